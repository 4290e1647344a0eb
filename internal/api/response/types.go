package response

import (
	"time"

	"github.com/mcoot/zonehunt/internal/model"
)

// Health is the health check response
type Health struct {
	Status  string      `json:"status"`
	Phase   model.Phase `json:"phase,omitempty"`
	Players int         `json:"players"`
}

// Account represents a registered account in API responses
type Account struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromModel converts a model.RegisteredPlayer to a response Account
func AccountFromModel(rp *model.RegisteredPlayer) Account {
	return Account{
		Username:  rp.Username,
		CreatedAt: rp.CreatedAt,
	}
}

// Verify is the response to a credential check
type Verify struct {
	Valid bool `json:"valid"`
}
