// Package docs registers the Swagger description of the fulfillment HTTP API
// with swag so echo-swagger can serve it under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/checkout": {
            "post": {
                "tags": ["orders"],
                "summary": "Place an order from the caller's cart",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CheckoutRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/cart": {
            "get": {
                "tags": ["cart"],
                "summary": "Current cart",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Cart"}}}
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Empty the cart",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Cart"}}}
            }
        },
        "/cart/items": {
            "post": {
                "tags": ["cart"],
                "summary": "Add a catalog item, merging with an existing line",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CartItemRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Cart"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/cart/items/{kind}/{referenceId}": {
            "put": {
                "tags": ["cart"],
                "summary": "Set the quantity of a line; zero or less removes it",
                "parameters": [
                    {"in": "path", "name": "kind", "required": true, "type": "string", "enum": ["product", "combo"]},
                    {"in": "path", "name": "referenceId", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/QuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Cart"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Remove a line",
                "parameters": [
                    {"in": "path", "name": "kind", "required": true, "type": "string", "enum": ["product", "combo"]},
                    {"in": "path", "name": "referenceId", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Cart"}}}
            }
        },
        "/orders": {
            "get": {
                "tags": ["orders"],
                "summary": "Orders visible to the caller's role",
                "parameters": [
                    {"in": "query", "name": "status", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"in": "query", "name": "from", "type": "string", "format": "date-time"},
                    {"in": "query", "name": "to", "type": "string", "format": "date-time"},
                    {"in": "query", "name": "customerId", "type": "string", "format": "uuid"},
                    {"in": "query", "name": "courierId", "type": "string", "format": "uuid"},
                    {"in": "query", "name": "q", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/orders/{id}/transitions": {
            "get": {
                "tags": ["orders"],
                "summary": "Current status, allowed targets and audit history",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Transitions"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "tags": ["orders"],
                "summary": "Move an order to another status",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StatusChange"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/TransitionError"}}
                }
            }
        },
        "/orders/{id}/courier": {
            "put": {
                "tags": ["deliveries"],
                "summary": "Assign a courier",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AssignCourierRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}}
            },
            "delete": {
                "tags": ["deliveries"],
                "summary": "Unassign the courier",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/orders/{id}/take": {
            "post": {
                "tags": ["deliveries"],
                "summary": "Courier takes an order and leaves with it",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/StatusChange"}}}
            }
        },
        "/orders/{id}/delivery": {
            "post": {
                "tags": ["deliveries"],
                "summary": "Record a completed delivery",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/RecordDeliveryRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/deliveries/active": {
            "get": {
                "tags": ["deliveries"],
                "summary": "Orders out for delivery with their couriers",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ActiveDelivery"}}}}
            }
        },
        "/couriers": {
            "get": {
                "tags": ["couriers"],
                "summary": "All couriers",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Courier"}}}}
            },
            "post": {
                "tags": ["couriers"],
                "summary": "Register a courier profile",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/CreateCourierRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Courier"}}}
            }
        },
        "/couriers/{id}/status": {
            "put": {
                "tags": ["couriers"],
                "summary": "Change operational status",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/StatusRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Courier"}}}
            }
        },
        "/couriers/{id}/location": {
            "put": {
                "tags": ["couriers"],
                "summary": "Report the courier's position",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Location"}}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/couriers/{id}/rating": {
            "get": {
                "tags": ["couriers"],
                "summary": "Average customer rating",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CourierRating"}}}
            }
        },
        "/ratings": {
            "post": {
                "tags": ["ratings"],
                "summary": "Rate a delivered order",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRatingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Rating"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/ratings/{id}": {
            "delete": {
                "tags": ["ratings"],
                "summary": "Delete a rating",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/ratings/ratable": {
            "get": {
                "tags": ["ratings"],
                "summary": "Delivered orders the caller has not rated",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RatableOrder"}}}}
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}},
        "TransitionError": {"type": "object", "properties": {"code": {"type": "integer"}, "message": {"type": "string"}, "allowed": {"type": "array", "items": {"type": "string"}}}},
        "Location": {"type": "object", "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}}},
        "CheckoutRequest": {"type": "object", "required": ["deliveryAddress", "paymentMethod"], "properties": {"deliveryAddress": {"type": "string"}, "paymentMethod": {"type": "string"}, "observations": {"type": "string"}}},
        "TransitionRequest": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string"}}},
        "AssignCourierRequest": {"type": "object", "required": ["courierId"], "properties": {"courierId": {"type": "string", "format": "uuid"}, "estimatedDeliveryAt": {"type": "string", "format": "date-time"}}},
        "RecordDeliveryRequest": {"type": "object", "properties": {"deliveredAt": {"type": "string", "format": "date-time"}, "customerRating": {"type": "integer"}}},
        "CreateCourierRequest": {"type": "object", "properties": {"userId": {"type": "string", "format": "uuid"}}},
        "StatusRequest": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["Available", "OnDelivery", "OffDuty"]}}},
        "SubmitRatingRequest": {"type": "object", "required": ["orderId", "foodScore", "serviceScore", "deliveryScore"], "properties": {"orderId": {"type": "string", "format": "uuid"}, "foodScore": {"type": "integer"}, "serviceScore": {"type": "integer"}, "deliveryScore": {"type": "integer"}, "comment": {"type": "string"}}},
        "CartItemRequest": {"type": "object", "required": ["kind", "referenceId", "quantity"], "properties": {"kind": {"type": "string"}, "referenceId": {"type": "string", "format": "uuid"}, "quantity": {"type": "integer"}}},
        "QuantityRequest": {"type": "object", "required": ["quantity"], "properties": {"quantity": {"type": "integer"}}},
        "CartItem": {"type": "object", "properties": {"kind": {"type": "string"}, "referenceId": {"type": "string"}, "name": {"type": "string"}, "unitPrice": {"type": "string"}, "quantity": {"type": "integer"}, "lineTotal": {"type": "string"}}},
        "Cart": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/CartItem"}}, "total": {"type": "string"}, "itemCount": {"type": "integer"}}},
        "OrderLine": {"type": "object", "properties": {"kind": {"type": "string"}, "referenceId": {"type": "string"}, "name": {"type": "string"}, "quantity": {"type": "integer"}, "unitPrice": {"type": "string"}, "total": {"type": "string"}}},
        "Order": {"type": "object", "properties": {"id": {"type": "string"}, "customerId": {"type": "string"}, "status": {"type": "string"}, "deliveryAddress": {"type": "string"}, "paymentMethod": {"type": "string"}, "observations": {"type": "string"}, "lines": {"type": "array", "items": {"$ref": "#/definitions/OrderLine"}}, "subtotal": {"type": "string"}, "discount": {"type": "string"}, "shippingCost": {"type": "string"}, "total": {"type": "string"}, "estimatedDeliveryAt": {"type": "string", "format": "date-time"}, "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}}},
        "StatusChange": {"type": "object", "properties": {"orderId": {"type": "string"}, "from": {"type": "string"}, "to": {"type": "string"}, "role": {"type": "string"}, "actorId": {"type": "string"}, "at": {"type": "string", "format": "date-time"}}},
        "Transitions": {"type": "object", "properties": {"orderId": {"type": "string"}, "current": {"type": "string"}, "allowed": {"type": "array", "items": {"type": "string"}}, "history": {"type": "array", "items": {"$ref": "#/definitions/StatusChange"}}}},
        "Courier": {"type": "object", "properties": {"id": {"type": "string"}, "userId": {"type": "string"}, "operationalStatus": {"type": "string"}, "location": {"$ref": "#/definitions/Location"}, "averageRating": {"type": "number"}, "ratedDeliveries": {"type": "integer"}}},
        "CourierRating": {"type": "object", "properties": {"courierId": {"type": "string"}, "averageRating": {"type": "number"}, "ratedDeliveries": {"type": "integer"}}},
        "ActiveDelivery": {"type": "object", "properties": {"orderId": {"type": "string"}, "courierId": {"type": "string"}, "deliveryAddress": {"type": "string"}, "estimatedDeliveryAt": {"type": "string", "format": "date-time"}, "courierLocation": {"$ref": "#/definitions/Location"}}},
        "Rating": {"type": "object", "properties": {"id": {"type": "string"}, "orderId": {"type": "string"}, "foodScore": {"type": "integer"}, "serviceScore": {"type": "integer"}, "deliveryScore": {"type": "integer"}, "comment": {"type": "string"}, "average": {"type": "number"}, "createdAt": {"type": "string", "format": "date-time"}}},
        "RatableOrder": {"type": "object", "properties": {"orderId": {"type": "string"}, "total": {"type": "string"}, "deliveredAt": {"type": "string", "format": "date-time"}}}
    }
}`

// SwaggerInfo holds the exported metadata of the API description.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Order Fulfillment API",
	Description:      "Carts, checkout, order lifecycle, courier dispatch and ratings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
