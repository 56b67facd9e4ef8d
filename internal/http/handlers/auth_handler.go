package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/bookstore-backend/internal/http/handlers/common"
	"github.com/ignatzorin/bookstore-backend/internal/http/response"
	"github.com/ignatzorin/bookstore-backend/internal/logger"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/service"
	"github.com/ignatzorin/bookstore-backend/internal/storage"
)

// Разрешённые расширения фотографии пользователя.
var allowedPhotoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// AuthHandler предоставляет HTTP слой регистрации и аутентификации.
type AuthHandler struct {
	auth    *service.AuthService
	storage *storage.PhotoStorage
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService, storage *storage.PhotoStorage) *AuthHandler {
	return &AuthHandler{auth: auth, storage: storage}
}

// SignUp обрабатывает POST /api/signup/.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req struct {
		EmailPhoneNumber string `json:"email_phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поле email_phone_number обязательно", apperror.ErrCodeValidationFailed)
		return
	}

	result, err := h.auth.SignUp(c.Request.Context(), req.EmailPhoneNumber, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":          result.User.ID,
		"auth_types":  result.User.AuthType,
		"auth_status": result.User.AuthStatus,
		"access":      result.TokenPair.AccessToken,
		"refresh":     result.TokenPair.RefreshToken,
	})
}

// VerifyCode обрабатывает POST /api/verify-code/.
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	var req struct {
		VerifyCode string `json:"verify_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поле verify_code обязательно", apperror.ErrCodeValidationFailed)
		return
	}

	result, err := h.auth.VerifyCode(c.Request.Context(), userID, req.VerifyCode, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"auth_status": result.User.AuthStatus,
		"access":      result.TokenPair.AccessToken,
		"refresh":     result.TokenPair.RefreshToken,
	})
}

// NewVerifyCode обрабатывает GET /api/new-verify-code/.
func (h *AuthHandler) NewVerifyCode(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	if err := h.auth.RequestNewCode(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Ваш код подтверждения отправлен повторно",
	})
}

// ChangeUserInformation обрабатывает PUT и PATCH /api/change-user-information/.
// PUT требует все поля профиля, PATCH принимает любое подмножество.
func (h *AuthHandler) ChangeUserInformation(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	var req struct {
		FirstName       *string `json:"first_name"`
		LastName        *string `json:"last_name"`
		Username        *string `json:"username"`
		Password        *string `json:"password"`
		ConfirmPassword *string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "некорректное тело запроса", apperror.ErrCodeValidationFailed)
		return
	}

	partial := c.Request.Method == http.MethodPatch

	user, err := h.auth.CompleteProfile(c.Request.Context(), userID, service.ProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}, partial)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":          user.ID,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"username":    user.Username,
		"auth_status": user.AuthStatus,
	})
}

// ChangeUserPhoto обрабатывает PUT /api/change-user-photo/.
// Принимает multipart поле photo; тип файла проверяется по магическим байтам.
func (h *AuthHandler) ChangeUserPhoto(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "поле photo обязательно", apperror.ErrCodeValidationFailed)
		return
	}
	if file.Size == 0 {
		response.Fail(c, http.StatusBadRequest, "файл не может быть пустым", apperror.ErrCodeValidationFailed)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExtensions[ext] {
		response.Fail(c, http.StatusBadRequest,
			"неподдерживаемый формат файла, разрешены: .png, .jpg, .jpeg", apperror.ErrCodeValidationFailed)
		return
	}

	src, err := file.Open()
	if err != nil {
		_ = c.Error(fmt.Errorf("auth handler: открытие файла: %w", err))
		return
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, _ := src.Read(buffer)

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown || (kind.Extension != "png" && kind.Extension != "jpg") {
		response.Fail(c, http.StatusBadRequest,
			"содержимое файла не является изображением png или jpeg", apperror.ErrCodeValidationFailed)
		return
	}

	if _, err := src.Seek(0, 0); err != nil {
		_ = c.Error(fmt.Errorf("auth handler: перемотка файла: %w", err))
		return
	}

	relativePath, _, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		if err == storage.ErrFileTooLarge {
			response.Fail(c, http.StatusBadRequest, "размер файла превышает лимит", apperror.ErrCodeValidationFailed)
			return
		}
		_ = c.Error(err)
		return
	}

	user, oldPath, err := h.auth.SetPhoto(c.Request.Context(), userID, relativePath)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Прежний файл больше не нужен, ошибка удаления не мешает ответу.
	if oldPath != "" && oldPath != relativePath {
		if err := h.storage.Delete(c.Request.Context(), oldPath); err != nil {
			logger.Log.WithError(err).Warn("Не удалось удалить прежнее фото пользователя")
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"photo":       user.PhotoPath,
		"auth_status": user.AuthStatus,
	})
}

// Login обрабатывает POST /api/login/.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		UserInput string `json:"user_input" binding:"required"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поля user_input и password обязательны", apperror.ErrCodeValidationFailed)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.UserInput, req.Password, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access":      result.TokenPair.AccessToken,
		"refresh":     result.TokenPair.RefreshToken,
		"auth_status": result.User.AuthStatus,
		"role":        result.User.Role,
	})
}

// LoginRefresh обрабатывает POST /api/login/refresh/.
func (h *AuthHandler) LoginRefresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поле refresh обязательно", apperror.ErrCodeValidationFailed)
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.Refresh, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	})
}

// Logout обрабатывает POST /api/logout/. Успешный выход отвечает 205.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поле refresh обязательно", apperror.ErrCodeValidationFailed)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.Refresh); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusResetContent, gin.H{
		"message": "Вы успешно вышли из системы",
	})
}

// ForgotPassword обрабатывает POST /api/forgot-password/.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		EmailOrPhone string `json:"email_or_phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поле email_or_phone обязательно", apperror.ErrCodeValidationFailed)
		return
	}

	result, err := h.auth.ForgotPassword(c.Request.Context(), req.EmailOrPhone, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Ваш код подтверждения отправлен повторно",
		"access":      result.TokenPair.AccessToken,
		"refresh":     result.TokenPair.RefreshToken,
		"user_status": result.User.AuthStatus,
	})
}

// ResetPassword обрабатывает POST /api/reset-password/.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	var req struct {
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поля password и confirm_password обязательны", apperror.ErrCodeValidationFailed)
		return
	}

	result, err := h.auth.ResetPassword(c.Request.Context(), userID, req.Password, req.ConfirmPassword, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Пароль успешно изменён",
		"access":  result.TokenPair.AccessToken,
		"refresh": result.TokenPair.RefreshToken,
	})
}

// requestMeta собирает метаданные клиента для записи в сессию.
func requestMeta(c *gin.Context) map[string]string {
	return map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}
}
