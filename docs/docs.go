// Package docs - OpenAPI-описание сервиса поиска объектов (формат swag).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Быстрый поиск по тексту",
                "parameters": [
                    {"type": "string", "description": "Поисковый запрос", "name": "q", "in": "query"},
                    {"type": "integer", "default": 12, "description": "Максимальное количество результатов", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ListFailureResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Поиск объектов по фильтрам",
                "parameters": [
                    {"description": "Фильтры поиска", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ListFailureResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ListFailureResponse"}}
                }
            }
        },
        "/api/v1/filters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Значения фильтров поиска",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Facets"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ListFailureResponse"}}
                }
            }
        },
        "/api/v1/infrastructures": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Map"],
                "summary": "Объекты в видимой области карты",
                "parameters": [
                    {"type": "number", "name": "north", "in": "query", "required": true},
                    {"type": "number", "name": "south", "in": "query", "required": true},
                    {"type": "number", "name": "east", "in": "query", "required": true},
                    {"type": "number", "name": "west", "in": "query", "required": true},
                    {"type": "integer", "default": 100, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ListFailureResponse"}}
                }
            }
        },
        "/api/v1/infrastructures/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Infrastructures"],
                "summary": "Карточка объекта",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Bearer токен", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InfrastructureDetail"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/infrastructures/{id}/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Infrastructures"],
                "summary": "Расписание объекта",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AvailabilityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Состояние сервиса",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.SearchItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "distanceKm": {"type": "number"}
            }
        },
        "domain.Facets": {
            "type": "object",
            "properties": {
                "pieces": {"type": "array", "items": {"type": "string"}},
                "equipements": {"type": "array", "items": {"type": "string"}},
                "accessibilites": {"type": "array", "items": {"type": "string"}},
                "jaugeMax": {"type": "number"}
            }
        },
        "domain.InfrastructureDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "in_service": {"type": "boolean"},
                "capacity": {"type": "number"},
                "informations": {"type": "string"},
                "pieces": {"type": "array", "items": {"type": "string"}},
                "equipments": {"type": "array", "items": {"type": "object"}},
                "accessibilites": {"type": "array", "items": {"type": "string"}},
                "isResponsable": {"type": "boolean"}
            }
        },
        "dto.SearchRequest": {
            "type": "object",
            "properties": {
                "q": {"type": "string"},
                "pieces": {"type": "array", "items": {"type": "string"}},
                "equipments": {"type": "array", "items": {"type": "string"}},
                "accessibilites": {"type": "array", "items": {"type": "string"}},
                "distanceKm": {"type": "number"},
                "centerLat": {"type": "number"},
                "centerLon": {"type": "number"},
                "jaugeMin": {"type": "number"},
                "jaugeMax": {"type": "number"},
                "dateFrom": {"type": "string"},
                "dateTo": {"type": "string"},
                "limit": {"type": "integer"}
            }
        },
        "dto.AvailabilityResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "jours": {"type": "array", "items": {"type": "string"}},
                "exceptions": {"type": "array", "items": {"type": "object"}},
                "available": {"type": "boolean"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "services": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"type": "object"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.ListFailureResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Infrastructure Search API",
	Description:      "Поиск спортивных объектов: фильтры, доступность по расписанию, расстояние и выборка для карты.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
