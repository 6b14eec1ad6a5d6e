package router

import (
	_ "finance-tracker/docs"
	"finance-tracker/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter builds the route table. Write routes are wrapped by the auth
// middleware; reads are public.
func NewRouter(homeHandler *handler.HomeHandler, authHandler *handler.AuthHandler, transactionHandler *handler.TransactionHandler, verifier handler.TokenVerifier) http.Handler {
	mux := http.NewServeMux()
	protected := handler.AuthMiddleware(verifier)

	mux.HandleFunc("GET /{$}", homeHandler.Home)
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	mux.Handle("POST /login", handler.ErrorHandlingMiddleware(authHandler.Login))

	mux.Handle("GET /transactions", handler.ErrorHandlingMiddleware(transactionHandler.ListTransactions))
	mux.Handle("GET /transactions/{id}", handler.ErrorHandlingMiddleware(transactionHandler.GetTransaction))
	mux.Handle("POST /transactions", protected(handler.ErrorHandlingMiddleware(transactionHandler.CreateTransaction)))
	mux.Handle("PUT /transactions/{id}", protected(handler.ErrorHandlingMiddleware(transactionHandler.UpdateTransaction)))
	mux.Handle("DELETE /transactions/{id}", protected(handler.ErrorHandlingMiddleware(transactionHandler.DeleteTransaction)))

	return handler.LoggingMiddleware(mux)
}
