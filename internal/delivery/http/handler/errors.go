package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// apiError is a single-key error body with its status code
type apiError struct {
	status  int
	key     string
	message string
}

func (e apiError) write(c *gin.Context) {
	c.JSON(e.status, gin.H{e.key: e.message})
}

var (
	errNotAuthorized  = apiError{http.StatusUnauthorized, "notauthorized", "User not authorized"}
	errPostNotFound   = apiError{http.StatusNotFound, "postnotfound", "No post found"}
	errNoPostFound    = apiError{http.StatusNotFound, "nopostfound", "No post found with that ID"}
	errNoPostsFound   = apiError{http.StatusNotFound, "nopostsfound", "No posts found"}
	errNoProfile      = apiError{http.StatusNotFound, "noprofile", "There is no profile for this user"}
	errNoProfiles     = apiError{http.StatusNotFound, "noprofile", "There are no profiles"}
	errNoUser         = apiError{http.StatusNotFound, "email", "User not found"}
	errHandleTaken    = apiError{http.StatusBadRequest, "handle", "That handle already exists"}
	errUnauthorized   = apiError{http.StatusUnauthorized, "error", "Unauthorized"}
	errInvalidRequest = apiError{http.StatusBadRequest, "error", "invalid request body"}
)

// domainErrors maps sentinels that carry the same body on every route.
// Not-found sentinels are absent: their body depends on the route.
var domainErrors = []struct {
	err  error
	resp apiError
}{
	{domain.ErrNotAuthorized, errNotAuthorized},
	{domain.ErrAlreadyLiked, apiError{http.StatusBadRequest, "alreadylike", "User already liked this post"}},
	{domain.ErrNotLiked, apiError{http.StatusBadRequest, "notliked", "You have not yet liked this post"}},
	{domain.ErrCommentNotFound, apiError{http.StatusNotFound, "commentnotexists", "Comment does not exists"}},
	{domain.ErrExperienceNotFound, apiError{http.StatusBadRequest, "norecord", "No record found"}},
	{domain.ErrEducationNotFound, apiError{http.StatusBadRequest, "norecord", "No record found"}},
	{domain.ErrHandleTaken, errHandleTaken},
	{domain.ErrEmailTaken, apiError{http.StatusBadRequest, "email", "Email already exists"}},
	{domain.ErrInvalidCredentials, apiError{http.StatusBadRequest, "password", "Password incorrect"}},
	{domain.ErrInvalidToken, errUnauthorized},
	{domain.ErrInvalidInput, errInvalidRequest},
}

// respondError writes the body for err. Parent-not-found errors and store
// failures both get the route's notFound body; store failures are logged.
func respondError(c *gin.Context, log *zap.Logger, err error, notFound apiError) {
	if errors.Is(err, domain.ErrPostNotFound) ||
		errors.Is(err, domain.ErrProfileNotFound) ||
		errors.Is(err, domain.ErrUserNotFound) {
		notFound.write(c)
		return
	}

	for _, e := range domainErrors {
		if errors.Is(err, e.err) {
			e.resp.write(c)
			return
		}
	}

	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	notFound.write(c)
}

// respondValidation writes a field -> message map for binding failures.
func respondValidation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errInvalidRequest.write(c)
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = validationMessage(fe)
	}
	c.JSON(http.StatusBadRequest, fields)
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " field is required"
	case "email":
		return "Email is invalid"
	case "url", "urlorempty":
		return "Not a valid URL"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "eqfield":
		return "Passwords must match"
	case "datetime":
		return field + " must be a date in " + fe.Param() + " format"
	default:
		return field + " is invalid"
	}
}
