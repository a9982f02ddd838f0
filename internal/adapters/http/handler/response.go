package handler

import (
	"log"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const contentTypeJSON = "application/json; charset=utf-8"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to encode response: %v", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetStatusCode(status)
	ctx.SetContentType(contentTypeJSON)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, err error) {
	writeJSON(ctx, statusForError(err), errorResponse{Error: err.Error()})
}

func writeBadRequest(ctx *fasthttp.RequestCtx, message string) {
	writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: message})
}

func writeNotFound(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{Error: "resource not found"})
}

func writeMethodNotAllowed(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func decodeBody(ctx *fasthttp.RequestCtx, dest any) error {
	return json.Unmarshal(ctx.PostBody(), dest)
}
