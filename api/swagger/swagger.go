package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SkillBridge Web",
        "description": "JSON routes served next to the SkillBridge pages: probes, metrics and the backend proxies",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Ops", "description": "Probes and metrics"},
        {"name": "Proxy", "description": "Browser access to the auth provider and REST API"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Ops"],
                "summary": "Readiness probe",
                "description": "Reports whether the backend (and Redis, when the catalog cache is on) answers",
                "responses": {
                    "200": {"description": "Ready", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "A dependency is down", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Ops"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Exposition format"},
                    "404": {"description": "Metrics disabled"}
                }
            }
        },
        "/api/auth/{path}": {
            "parameters": [
                {"name": "path", "in": "path", "required": true, "type": "string"}
            ],
            "get": {
                "tags": ["Proxy"],
                "summary": "Forward to the auth provider",
                "description": "Same path on BACKEND_URL. Set-Cookie headers are rewritten to SameSite=Lax without Secure, Partitioned or the __Secure- prefix.",
                "responses": {
                    "200": {"description": "Backend response"},
                    "502": {"description": "Backend unreachable", "schema": {"$ref": "#/definitions/ProxyError"}}
                }
            },
            "post": {
                "tags": ["Proxy"],
                "summary": "Forward to the auth provider",
                "responses": {
                    "200": {"description": "Backend response"},
                    "502": {"description": "Backend unreachable", "schema": {"$ref": "#/definitions/ProxyError"}}
                }
            }
        },
        "/api/proxy/{path}": {
            "parameters": [
                {"name": "path", "in": "path", "required": true, "type": "string"}
            ],
            "get": {
                "tags": ["Proxy"],
                "summary": "Forward to the REST API",
                "description": "/api/proxy is replaced by /api on BACKEND_URL. Only Content-Type is copied from the backend response.",
                "responses": {
                    "200": {"description": "Backend response"},
                    "502": {"description": "Backend unreachable", "schema": {"$ref": "#/definitions/ProxyError"}}
                }
            },
            "post": {
                "tags": ["Proxy"],
                "summary": "Forward to the REST API",
                "responses": {
                    "200": {"description": "Backend response"},
                    "502": {"description": "Backend unreachable", "schema": {"$ref": "#/definitions/ProxyError"}}
                }
            },
            "put": {
                "tags": ["Proxy"],
                "summary": "Forward to the REST API",
                "responses": {
                    "200": {"description": "Backend response"}
                }
            },
            "patch": {
                "tags": ["Proxy"],
                "summary": "Forward to the REST API",
                "responses": {
                    "200": {"description": "Backend response"}
                }
            },
            "delete": {
                "tags": ["Proxy"],
                "summary": "Forward to the REST API",
                "responses": {
                    "200": {"description": "Backend response"}
                }
            }
        }
    },
    "definitions": {
        "Meta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "meta": {"$ref": "#/definitions/Meta"}
            }
        },
        "ProxyError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
