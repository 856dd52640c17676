package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/cardstash/internal/models"
	"github.com/mmynk/cardstash/internal/service"
	"github.com/mmynk/cardstash/internal/validation"
)

const (
	msgSuccess         = "Success!"
	msgHello           = "Hello from cardstash!"
	msgUsernameTaken   = "Username is already taken"
	msgInvalidCreds    = "Invalid credentials"
	msgInvalidBody     = "Invalid request body"
	msgInternalFailure = "Internal server error"
)

// messageResponse is the body of every non-list response.
type messageResponse struct {
	Message string `json:"message"`
}

// validationResponse is the 400 body for schema failures. Message repeats
// the first field error so clients can show a single line.
type validationResponse struct {
	Message string                 `json:"message"`
	Errors  validation.FieldErrors `json:"errors"`
}

type signInResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Handlers holds the services behind the HTTP endpoints.
type Handlers struct {
	accounts *service.AccountService
	cards    *service.CardService
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(accounts *service.AccountService, cards *service.CardService) *Handlers {
	return &Handlers{accounts: accounts, cards: cards}
}

// Hello is a sample endpoint.
func (h *Handlers) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: msgHello})
}

// SignUp registers a user. Creation answers 200, not 201.
func (h *Handlers) SignUp(c *gin.Context) {
	creds, ok := bindCredentials(c)
	if !ok {
		return
	}

	if _, err := h.accounts.Register(c.Request.Context(), creds); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, messageResponse{Message: msgUsernameTaken})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: msgSuccess})
}

// SignIn returns the user matching the submitted username and password.
func (h *Handlers) SignIn(c *gin.Context) {
	creds, ok := bindCredentials(c)
	if !ok {
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), creds)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, messageResponse{Message: msgInvalidCreds})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, signInResponse{Message: msgSuccess, User: user})
}

// CreateCard stores a card for the userId in the body.
func (h *Handlers) CreateCard(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	in, errs := validation.NewCard(raw)
	if len(errs) > 0 {
		rejectInvalid(c, errs)
		return
	}

	if _, err := h.cards.Create(c.Request.Context(), in); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: msgSuccess})
}

// SearchCards lists cards, optionally filtered by the userId and search
// query parameters. A parameter that is absent does not filter.
func (h *Handlers) SearchCards(c *gin.Context) {
	var filter models.CardFilter
	if userID, ok := c.GetQuery("userId"); ok {
		filter.OwnerID = &userID
	}
	if search, ok := c.GetQuery("search"); ok {
		filter.NameContains = &search
	}

	// Stored values never contain NUL, and PostgreSQL rejects it in queries.
	if (filter.OwnerID != nil && validation.HasNUL(*filter.OwnerID)) ||
		(filter.NameContains != nil && validation.HasNUL(*filter.NameContains)) {
		c.JSON(http.StatusOK, []*models.Card{})
		return
	}

	cards, err := h.cards.Search(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

// ListUsers returns every user.
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func bindCredentials(c *gin.Context) (models.Credentials, bool) {
	raw, ok := bindRaw(c)
	if !ok {
		return models.Credentials{}, false
	}
	creds, errs := validation.Credentials(raw)
	if len(errs) > 0 {
		rejectInvalid(c, errs)
		return models.Credentials{}, false
	}
	return creds, true
}

// bindRaw decodes the body as a JSON object without interpreting fields.
func bindRaw(c *gin.Context) (validation.RawInput, bool) {
	var raw validation.RawInput
	if err := c.ShouldBindJSON(&raw); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return nil, false
	}
	if raw == nil {
		raw = validation.RawInput{}
	}
	return raw, true
}

func rejectInvalid(c *gin.Context, errs validation.FieldErrors) {
	c.JSON(http.StatusBadRequest, validationResponse{Message: errs.First(), Errors: errs})
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, messageResponse{Message: msgInternalFailure})
}
