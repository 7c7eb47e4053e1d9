package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/server/http/dto"
	"github.com/servery/servery/internal/server/http/middleware"
	"github.com/servery/servery/internal/usecase"
)

// AccountHandler processes registration, login, and profile management.
type AccountHandler struct {
	facade AccountFacade
	logger *slog.Logger
}

// NewAccountHandler creates AccountHandler instance.
func NewAccountHandler(facade AccountFacade, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{facade: facade, logger: logger}
}

// Register handles POST /api/account/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	username, err := usecase.ValidateUsername(req.Username)
	if err != nil {
		badRequest(c, err)
		return
	}
	if _, err := usecase.ValidatePassword(req.Password); err != nil {
		badRequest(c, err)
		return
	}
	firstName, lastName := req.FirstName, req.LastName
	if firstName != "" {
		if firstName, err = usecase.ValidateName(firstName); err != nil {
			badRequest(c, err)
			return
		}
	}
	if lastName != "" {
		if lastName, err = usecase.ValidateName(lastName); err != nil {
			badRequest(c, err)
			return
		}
	}

	token, err := h.facade.Register(c.Request.Context(), username, req.Password, firstName, lastName)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			badRequest(c, err)
			return
		}
		respondRefusal(c, h.logger, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Login handles POST /api/account/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		respondRefusal(c, h.logger, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Profile handles GET /api/account.
func (h *AccountHandler) Profile(c *gin.Context) {
	account, err := h.facade.Account(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{
		Username:        account.Username,
		FirstName:       account.FirstName,
		LastName:        account.LastName,
		Address:         account.Address,
		CardNumber:      account.CardNumber,
		CardExpiry:      account.CardExpiry,
		CardCode:        account.CardCode,
		BillingComplete: account.BillingComplete(),
	})
}

// Update handles PUT /api/account. Billing fields may be cleared by sending
// them empty; non-empty values must pass format validation. A non-empty
// password is changed alongside the profile.
func (h *AccountHandler) Update(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var err error
	if req.FirstName != "" {
		if req.FirstName, err = usecase.ValidateName(req.FirstName); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.LastName != "" {
		if req.LastName, err = usecase.ValidateName(req.LastName); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.Address != "" {
		if req.Address, err = usecase.ValidateAddress(req.Address); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.CardNumber != "" {
		if req.CardNumber, err = usecase.ValidateCardNumber(req.CardNumber); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.CardExpiry != "" {
		if req.CardExpiry, err = usecase.ValidateCardExpiry(req.CardExpiry); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.CardCode != "" {
		if req.CardCode, err = usecase.ValidateCardCode(req.CardCode); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.Password != "" {
		if _, err = usecase.ValidatePassword(req.Password); err != nil {
			badRequest(c, err)
			return
		}
	}

	username := CurrentUser(c)
	if err := h.facade.UpdateProfile(c.Request.Context(), username,
		req.FirstName, req.LastName, req.Address,
		req.CardNumber, req.CardExpiry, req.CardCode,
	); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}

	if req.Password != "" {
		if err := h.facade.ChangePassword(c.Request.Context(), username, req.Password); err != nil {
			respondRefusal(c, h.logger, err)
			return
		}
	}

	c.Status(http.StatusOK)
}
