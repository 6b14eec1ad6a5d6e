package handler

import (
	"finance-tracker/common"
	"finance-tracker/model"
	"net/http"
)

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  get the status of server
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "API is healthy and running"})
}

// HomeHandler serves the project description on the root path.
type HomeHandler struct {
	info model.HomeResponse
}

func NewHomeHandler(developer, missionStatement string) *HomeHandler {
	return &HomeHandler{info: model.HomeResponse{
		Developer:        developer,
		MissionStatement: missionStatement,
	}}
}

// Home godoc
// @Summary      Project information
// @Tags         home
// @Produce      json
// @Success      200  {object}  model.HomeResponse
// @Router       / [get]
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, h.info)
}
