package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Rehberlik API",
        "description": "Guidance office referral intake and record management",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Referrals", "description": "Referral intake and history"},
        {"name": "Roster", "description": "Teacher and class roster management"},
        {"name": "Discipline", "description": "Discipline event records"},
        {"name": "Risk", "description": "Student risk tracking"},
        {"name": "Contacts", "description": "Parent contact log"},
        {"name": "Reminders", "description": "Follow-up reminders"},
        {"name": "Tasks", "description": "Counselor task list"},
        {"name": "Drafts", "description": "Guidance document drafting"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/referrals": {
            "post": {
                "tags": ["Referrals"],
                "summary": "Submit a batch of guidance referrals",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReferralBatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "Delivered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation or roster mismatch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "All delivery channels failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Referrals"],
                "summary": "List referral history",
                "parameters": [
                    {"name": "teacher", "in": "query", "type": "string"},
                    {"name": "classKey", "in": "query", "type": "string"},
                    {"name": "student", "in": "query", "type": "string"},
                    {"name": "reason", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/referrals/stats": {
            "get": {
                "tags": ["Referrals"],
                "summary": "Referral statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/referrals/{id}": {
            "delete": {
                "tags": ["Referrals"],
                "summary": "Delete a referral record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/roster": {
            "put": {
                "tags": ["Roster"],
                "summary": "Replace the roster with an imported snapshot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "Imported", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/roster/teachers": {
            "get": {
                "tags": ["Roster"],
                "summary": "List roster teachers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/roster/class-map": {
            "get": {
                "tags": ["Roster"],
                "summary": "List class display to key mappings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/discipline": {
            "get": {
                "tags": ["Discipline"],
                "summary": "List discipline events",
                "parameters": [
                    {"name": "student", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Discipline"],
                "summary": "Record a discipline event",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/discipline/{id}": {
            "put": {
                "tags": ["Discipline"],
                "summary": "Update a discipline event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Discipline"],
                "summary": "Delete a discipline event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/risks": {
            "get": {
                "tags": ["Risk"],
                "summary": "List risk entries",
                "parameters": [
                    {"name": "student", "in": "query", "type": "string"},
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Risk"],
                "summary": "Open a risk entry",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/risks/{id}": {
            "put": {
                "tags": ["Risk"],
                "summary": "Update a risk entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Risk"],
                "summary": "Delete a risk entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/contacts": {
            "get": {
                "tags": ["Contacts"],
                "summary": "List parent contacts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Contacts"],
                "summary": "Record a parent contact",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contacts/{id}": {
            "put": {
                "tags": ["Contacts"],
                "summary": "Update a parent contact",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Contacts"],
                "summary": "Delete a parent contact",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/reminders": {
            "get": {
                "tags": ["Reminders"],
                "summary": "List follow-up reminders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Reminders"],
                "summary": "Create a follow-up reminder",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reminders/due": {
            "get": {
                "tags": ["Reminders"],
                "summary": "List overdue open reminders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reminders/{id}": {
            "put": {
                "tags": ["Reminders"],
                "summary": "Update a follow-up reminder",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Reminders"],
                "summary": "Delete a follow-up reminder",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List counselor tasks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create a counselor task",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tasks/{id}": {
            "put": {
                "tags": ["Tasks"],
                "summary": "Update a counselor task",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete a counselor task",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/drafts": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Draft a guidance document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Drafting not configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/drafts/pdf": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Draft a guidance document as PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DraftRequest"}}
                ],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"},
                    "503": {"description": "Drafting not configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ReferralItem": {
            "type": "object",
            "properties": {
                "teacher_name": {"type": "string"},
                "class_display": {"type": "string"},
                "student_name": {"type": "string"},
                "reason": {"type": "string"},
                "note": {"type": "string"}
            },
            "required": ["teacher_name", "class_display", "student_name", "reason"]
        },
        "ReferralBatchRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ReferralItem"}
                }
            },
            "required": ["items"]
        },
        "DispatchOutcome": {
            "type": "object",
            "properties": {
                "channel": {"type": "string"},
                "attempted": {"type": "integer"},
                "succeeded": {"type": "integer"},
                "failures": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "index": {"type": "integer"},
                            "reason": {"type": "string"}
                        }
                    }
                }
            }
        },
        "IntakeResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "sent_count": {"type": "integer"},
                "warnings": {"type": "array", "items": {"type": "string"}},
                "errors": {"type": "array", "items": {"type": "string"}},
                "outcomes": {"type": "array", "items": {"$ref": "#/definitions/DispatchOutcome"}}
            }
        },
        "ImportRosterRequest": {
            "type": "object",
            "properties": {
                "teachers": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "name": {"type": "string"},
                            "class_key": {"type": "string"}
                        },
                        "required": ["name", "class_key"]
                    }
                },
                "class_map": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "display": {"type": "string"},
                            "key": {"type": "string"}
                        },
                        "required": ["display", "key"]
                    }
                }
            },
            "required": ["teachers"]
        },
        "DraftRequest": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["parent_letter", "interview_note", "observation_report"]},
                "student_name": {"type": "string"},
                "points": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["kind", "student_name"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
