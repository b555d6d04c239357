package controllers

import (
	"acelera/src/config"
	"acelera/src/models"
	"acelera/src/types"
	"acelera/src/utils"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthLogin simulates a login: after the login delay any credentials are
// accepted. Known emails get their stored user, others a tattooist profile.
func AuthLogin(ctx *gin.Context, studio *Studio) (token *string, user *models.User, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}
	if err := wait(ctx.Request.Context(), config.LoginDelay()); err != nil {
		return nil, nil, http.StatusRequestTimeout, err
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	user, err = studio.store.GetUserByEmail(ctx.Request.Context(), email)
	if errors.Is(err, types.ErrNotFound) {
		user = &models.User{
			ID:    email,
			Name:  strings.SplitN(email, "@", 2)[0],
			Email: email,
			Role:  types.ROLE_TATTOOIST,
		}
	} else if err != nil {
		log.Printf("Error logging in user [%s]: %s\n", email, err.Error())
		return nil, nil, http.StatusInternalServerError, err
	}
	jwt, err := utils.GenerateJWT(user)
	if err != nil {
		log.Printf("Could not sign token: %s\n", err.Error())
		return nil, nil, http.StatusInternalServerError, err
	}
	return &jwt, user, http.StatusOK, nil
}
