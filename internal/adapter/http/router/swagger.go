package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Banking Ledger API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Banking Ledger API",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {
        "type": "http",
        "scheme": "bearer",
        "bearerFormat": "JWT"
      }
    }
  },
  "paths": {
    "/register": {
      "post": {
        "summary": "Register user",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "password"],
                "properties": {
                  "email": {"type": "string", "format": "email"},
                  "password": {"type": "string", "minLength": 8}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error or email already registered"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/login": {
      "post": {
        "summary": "Login and obtain access and refresh tokens",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "password"],
                "properties": {
                  "email": {"type": "string", "format": "email"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Tokens issued"},
          "400": {"description": "Validation error"},
          "401": {"description": "Invalid credentials"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts": {
      "post": {
        "summary": "Open an account for the authenticated user",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["currency"],
                "properties": {
                  "currency": {"type": "string", "enum": ["USD", "EUR", "ILS"]}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List the authenticated user's open accounts",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Accounts fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/deposit-funds": {
      "post": {
        "summary": "Deposit funds into an account",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountId", "amount"],
                "properties": {
                  "accountId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "200.00"},
                  "currency": {"type": "string", "enum": ["USD", "EUR", "ILS"]}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Deposit applied"},
          "400": {"description": "Validation error or unsupported conversion"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Concurrent modification, retry"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/withdraw-funds": {
      "post": {
        "summary": "Withdraw funds from an account",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountId", "amount"],
                "properties": {
                  "accountId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "300.00"},
                  "currency": {"type": "string", "enum": ["USD", "EUR", "ILS"]}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Withdrawal applied"},
          "400": {"description": "Validation error or unsupported conversion"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Concurrent modification, retry"},
          "422": {"description": "Insufficient funds"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfer-funds": {
      "post": {
        "summary": "Transfer funds between two accounts",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fromAccountId", "toAccountId", "amount", "currency"],
                "properties": {
                  "fromAccountId": {"type": "string", "format": "uuid"},
                  "toAccountId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "150.00"},
                  "currency": {"type": "string", "enum": ["USD", "EUR", "ILS"]}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer applied"},
          "400": {"description": "Validation error or unsupported conversion"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Concurrent modification, retry"},
          "422": {"description": "Insufficient funds"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/suspend-account": {
      "post": {
        "summary": "Suspend an account",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountId"],
                "properties": {
                  "accountId": {"type": "string", "format": "uuid"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Account suspended"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Concurrent modification, retry"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/close-account": {
      "post": {
        "summary": "Close an account",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountId"],
                "properties": {
                  "accountId": {"type": "string", "format": "uuid"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Account closed"},
          "400": {"description": "Validation error or negative balance"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Concurrent modification, retry"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions": {
      "get": {
        "summary": "List the authenticated user's transactions, newest first",
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "name": "limit",
            "in": "query",
            "required": false,
            "schema": {
              "type": "integer",
              "minimum": 0
            }
          }
        ],
        "responses": {
          "200": {"description": "Transactions fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/grant-loan": {
      "post": {
        "summary": "Request a loan",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount"],
                "properties": {
                  "amount": {"type": "string", "example": "5000.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Loan granted"},
          "400": {"description": "Validation error or loan denied"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/repay-loan": {
      "post": {
        "summary": "Repay part or all of a loan",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["loanId", "amount"],
                "properties": {
                  "loanId": {"type": "string", "format": "uuid"},
                  "amount": {"type": "string", "example": "1000.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Repayment applied"},
          "400": {"description": "Validation error or repayment exceeds balance"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Loan not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/loans": {
      "get": {
        "summary": "List the authenticated user's loans",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Loans fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    }
  }
}`
