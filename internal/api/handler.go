package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/udisondev/moderation/internal/admin"
	"github.com/udisondev/moderation/internal/model"
)

// AdminHandler serves player lookups and admin actions.
type AdminHandler struct {
	service *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// PlayerResponse is the body of GET /players/{id}.
type PlayerResponse struct {
	ID        uuid.UUID            `json:"id"`
	AccountID *uuid.UUID           `json:"accountId,omitempty"`
	Name      string               `json:"name"`
	Online    bool                 `json:"online"`
	Location  *LocationResponse    `json:"location,omitempty"`
	Ban       *RestrictionResponse `json:"ban,omitempty"`
	Mute      *RestrictionResponse `json:"mute,omitempty"`
}

// LocationResponse is a session position.
type LocationResponse struct {
	MapID uuid.UUID `json:"mapId"`
	X     byte      `json:"x"`
	Y     byte      `json:"y"`
}

// RestrictionResponse is an active ban or mute.
type RestrictionResponse struct {
	Subject   string     `json:"subject"`
	Reason    string     `json:"reason,omitempty"`
	IssuedBy  string     `json:"issuedBy"`
	IP        string     `json:"ip,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// GetPlayer handles GET /players/{id} and GET /players/{name}
func (h *AdminHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := identifierFrom(r)

	status, out, err := h.service.Lookup(r.Context(), id)
	if err != nil {
		WriteInternalError(w)
		return
	}
	if !out.OK() {
		WriteOutcome(w, out)
		return
	}

	WriteJSON(w, http.StatusOK, newPlayerResponse(status))
}

// Apply handles POST /players/{id}/admin/{action}
func (h *AdminHandler) Apply(w http.ResponseWriter, r *http.Request) {
	op, ok := OperatorFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
		return
	}

	action, err := admin.ParseAction(mux.Vars(r)["action"])
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	var params admin.Parameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		msg := "Invalid request body"
		if errors.Is(err, admin.ErrInvalidParameters) {
			msg = err.Error()
		}
		WriteError(w, http.StatusBadRequest, CodeInvalidRequest, msg)
		return
	}

	if !op.Access.Permits(action) {
		WriteError(w, http.StatusForbidden, CodeForbidden,
			fmt.Sprintf("%s may not use '%s'", op.Access.Name, action))
		return
	}

	if params.Moderator == "" {
		params.Moderator = op.Name
	}

	out, err := h.service.Apply(r.Context(), identifierFrom(r), action, params)
	if err != nil {
		WriteInternalError(w)
		return
	}
	WriteOutcome(w, out)
}

// identifierFrom reads {id} or {name}; the router only fills {id} for
// well-formed UUIDs.
func identifierFrom(r *http.Request) admin.Identifier {
	vars := mux.Vars(r)
	if raw, ok := vars["id"]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			return admin.ByID(id)
		}
	}
	return admin.ByName(vars["name"])
}

func newPlayerResponse(s admin.PlayerStatus) PlayerResponse {
	p := s.Target.Player
	resp := PlayerResponse{
		ID:     p.ID,
		Name:   p.Name,
		Online: s.Target.Online(),
		Ban:    newRestrictionResponse(s.Ban),
		Mute:   newRestrictionResponse(s.Mute),
	}
	if p.HasAccount() {
		account := p.AccountID
		resp.AccountID = &account
	}
	if sess := s.Target.Session; sess != nil {
		resp.Location = &LocationResponse{
			MapID: sess.Location.MapID,
			X:     sess.Location.X,
			Y:     sess.Location.Y,
		}
	}
	return resp
}

func newRestrictionResponse(r *model.Restriction) *RestrictionResponse {
	if r == nil {
		return nil
	}
	return &RestrictionResponse{
		Subject:   r.Subject.String(),
		Reason:    r.Reason,
		IssuedBy:  r.IssuedBy,
		IP:        r.IP,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}
