package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Spendtrails Site Content API",
        "description": "CMS content for the Spendtrails marketing site with static fallback data",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Content", "description": "CMS documents, served live or from fallback data"},
        {"name": "CMS", "description": "CMS configuration diagnostics and image helpers"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check including the content mode",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Content client not initialised"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/content/homepage": {
            "get": {
                "tags": ["Content"],
                "summary": "Homepage content",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/content/site-settings": {
            "get": {
                "tags": ["Content"],
                "summary": "Site settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/content/features": {
            "get": {
                "tags": ["Content"],
                "summary": "Features page content",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/content/pricing": {
            "get": {
                "tags": ["Content"],
                "summary": "Pricing page content",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/content/pages/{slug}": {
            "get": {
                "tags": ["Content"],
                "summary": "Generic page by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown slug", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/content/by-type/{type}": {
            "get": {
                "tags": ["Content"],
                "summary": "Content by type tag",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string", "enum": ["homepage", "siteSettings", "featuresPage", "pricingPage", "page"]},
                    {"name": "slug", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown content type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown slug", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cms/status": {
            "get": {
                "tags": ["CMS"],
                "summary": "CMS configuration status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cms/image": {
            "get": {
                "tags": ["CMS"],
                "summary": "Build an image CDN URL",
                "parameters": [
                    {"name": "ref", "in": "query", "required": true, "type": "string"},
                    {"name": "w", "in": "query", "type": "integer"},
                    {"name": "h", "in": "query", "type": "integer"},
                    {"name": "blur", "in": "query", "type": "integer"},
                    {"name": "q", "in": "query", "type": "integer"},
                    {"name": "fm", "in": "query", "type": "string", "enum": ["jpg", "png", "webp"]},
                    {"name": "fit", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid reference or options", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
