// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/returns": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Files a new return. It always starts as PENDING.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["returns"],
                "summary": "Create a return",
                "parameters": [{"description": "Return details", "name": "return", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitReturnRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ReturnResponse"}},
                    "400": {"description": "Invalid input format or validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Failed to create return", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/returns/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["returns"],
                "summary": "Count returns per status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReturnStatusSummaryResponse"}}
                }
            }
        },
        "/returns/{returnID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["returns"],
                "summary": "Get a return by ID",
                "parameters": [{"type": "string", "description": "Return ID", "name": "returnID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReturnResponse"}},
                    "404": {"description": "Return not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Replaces the content of a return. Status and creation fields are kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["returns"],
                "summary": "Update a return",
                "parameters": [
                    {"type": "string", "description": "Return ID", "name": "returnID", "in": "path", "required": true},
                    {"description": "Return details", "name": "return", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitReturnRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReturnResponse"}},
                    "400": {"description": "Invalid input format or validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Return not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Purchase order changed concurrently", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes a return and reverses its effect on orders and supplier balances.",
                "tags": ["returns"],
                "summary": "Delete a return",
                "parameters": [{"type": "string", "description": "Return ID", "name": "returnID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Return deleted"},
                    "404": {"description": "Return not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/returns/{returnID}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "PENDING may become APPROVED or REJECTED, APPROVED may become COMPLETED.",
                "consumes": ["application/json"],
                "tags": ["returns"],
                "summary": "Change the status of a return",
                "parameters": [
                    {"type": "string", "description": "Return ID", "name": "returnID", "in": "path", "required": true},
                    {"description": "Target status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChangeReturnStatusRequest"}}
                ],
                "responses": {
                    "204": {"description": "Status changed"},
                    "400": {"description": "Invalid status or transition", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Return not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/purchase-orders/{orderID}/returns": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["purchase-orders"],
                "summary": "List returns of a purchase order",
                "parameters": [{"type": "string", "description": "Purchase order ID", "name": "orderID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListReturnsResponse"}}
                }
            }
        },
        "/purchase-orders/{orderID}/returned-items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["purchase-orders"],
                "summary": "Returned items of a purchase order",
                "parameters": [{"type": "string", "description": "Purchase order ID", "name": "orderID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReturnedItemsResponse"}},
                    "404": {"description": "Purchase order not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/purchase-orders/{orderID}/adjustment-preview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["purchase-orders"],
                "summary": "Preview the reconciliation of a purchase order",
                "parameters": [{"type": "string", "description": "Purchase order ID", "name": "orderID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AdjustmentPreviewResponse"}},
                    "404": {"description": "Purchase order not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.ChangeReturnStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "example": "COMPLETED"}}
        },
        "dto.ReturnItemRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sourceItemId": {"type": "string"},
                "description": {"type": "string"},
                "quantity": {"type": "string", "example": "2"},
                "unitPrice": {"type": "string", "example": "12.50"},
                "originalQuantity": {"type": "string"}
            }
        },
        "dto.SubmitReturnRequest": {
            "type": "object",
            "required": ["reason", "type"],
            "properties": {
                "type": {"type": "string", "example": "PURCHASE"},
                "reason": {"type": "string"},
                "notes": {"type": "string"},
                "purchaseId": {"type": "string"},
                "supplierId": {"type": "string"},
                "expenseId": {"type": "string"},
                "isManual": {"type": "boolean"},
                "manualReference": {"type": "string"},
                "manualDate": {"type": "string"},
                "manualSupplierId": {"type": "string"},
                "totalAmount": {"type": "string", "example": "25.00"},
                "baseAmount": {"type": "string"},
                "taxAmount": {"type": "string"},
                "remainingAmount": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.ReturnItemRequest"}},
                "metadata": {"type": "object", "additionalProperties": true}
            }
        },
        "dto.ReturnResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "status": {"type": "string"},
                "reason": {"type": "string"},
                "purchaseId": {"type": "string"},
                "supplierId": {"type": "string"},
                "expenseId": {"type": "string"},
                "isManual": {"type": "boolean"},
                "totalAmount": {"type": "string"},
                "baseAmount": {"type": "string"},
                "taxAmount": {"type": "string"},
                "remainingAmount": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.ReturnItemRequest"}},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "lastUpdatedAt": {"type": "string"},
                "lastUpdatedBy": {"type": "string"}
            }
        },
        "dto.ListReturnsResponse": {
            "type": "object",
            "properties": {"returns": {"type": "array", "items": {"$ref": "#/definitions/dto.ReturnResponse"}}}
        },
        "dto.ReturnStatusSummaryResponse": {
            "type": "object",
            "properties": {
                "statuses": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"status": {"type": "string"}, "count": {"type": "integer"}, "totalAmount": {"type": "string"}}
                    }
                }
            }
        },
        "dto.ReturnedItemsResponse": {
            "type": "object",
            "properties": {
                "purchaseOrderId": {"type": "string"},
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "sourceItemId": {"type": "string"},
                            "description": {"type": "string"},
                            "totalQuantity": {"type": "string"},
                            "totalAmount": {"type": "string"},
                            "history": {"type": "array", "items": {"type": "object"}}
                        }
                    }
                }
            }
        },
        "dto.AdjustmentPreviewResponse": {
            "type": "object",
            "properties": {
                "purchaseOrderId": {"type": "string"},
                "changed": {"type": "boolean"},
                "items": {"type": "array", "items": {"type": "object"}},
                "subtotal": {"type": "string"},
                "taxRate": {"type": "string"},
                "taxAmount": {"type": "string"},
                "totalAmount": {"type": "string"},
                "remainingAmount": {"type": "string"},
                "totalReturnedAmount": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Returns Backend API",
	Description:      "Return requests and their reconciliation against purchase orders and supplier balances.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
