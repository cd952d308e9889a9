package handlers

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/EO-DataHub/eodhp-user-console/api/services"
	"github.com/EO-DataHub/eodhp-user-console/internal/userlist"
	"github.com/EO-DataHub/eodhp-user-console/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var usersPage = template.Must(template.ParseFS(templateFS, "templates/users.html"))

type fieldView struct {
	Name        models.DraftField
	Type        string
	Placeholder string
	Value       string
	Required    bool
}

type pageView struct {
	BasePath string
	State    userlist.State
	Editing  bool
	Fields   []fieldView
}

// Input widget hints per draft field. Name and email are required.
var fieldWidgets = map[models.DraftField]fieldView{
	models.FieldName:    {Type: "text", Placeholder: "Name", Required: true},
	models.FieldEmail:   {Type: "email", Placeholder: "Email", Required: true},
	models.FieldPhone:   {Type: "tel", Placeholder: "Phone"},
	models.FieldWebsite: {Type: "url", Placeholder: "Website"},
}

func newPageView(basePath string, state userlist.State) pageView {
	fields := make([]fieldView, 0, len(models.DraftFields))
	for _, f := range models.DraftFields {
		v := fieldWidgets[f]
		v.Name = f
		v.Value = state.Draft.Get(f)
		fields = append(fields, v)
	}
	return pageView{
		BasePath: basePath,
		State:    state,
		Editing:  state.Mode() == userlist.ModeEditing,
		Fields:   fields,
	}
}

// UsersPage renders the form and the list of users.
func UsersPage(ul UserList, basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "max-age=0")
		if err := usersPage.Execute(w, newPageView(basePath, ul.State())); err != nil {
			logger.Error().Err(err).Msg("Failed to render users page")
		}
	}
}

// SubmitUser copies the posted form into the draft and submits it.
func SubmitUser(ul UserList, basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		if err := r.ParseForm(); err != nil {
			logger.Debug().Err(err).Msg("Invalid form payload")
			http.Error(w, "invalid form payload", http.StatusBadRequest)
			return
		}

		for _, f := range models.DraftFields {
			if err := ul.UpdateDraftField(f, r.PostForm.Get(string(f))); err != nil {
				logger.Error().Err(err).Str("field", string(f)).Msg("Failed to update draft")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		// The form widgets mark these as required.
		if r.PostForm.Get(string(models.FieldName)) == "" ||
			r.PostForm.Get(string(models.FieldEmail)) == "" {
			http.Error(w, "name and email are required fields", http.StatusBadRequest)
			return
		}

		ul.Submit(r.Context())
		http.Redirect(w, r, pagePath(basePath), http.StatusSeeOther)
	}
}

// EditUser switches the form to editing the user named in the path.
func EditUser(ul UserList, basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := models.UserID(mux.Vars(r)["user-id"])

		user, ok := ul.User(userID)
		if !ok {
			zerolog.Ctx(r.Context()).Debug().Str("user_id", userID.String()).Msg("User not found")
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		ul.BeginEdit(user)
		http.Redirect(w, r, pagePath(basePath), http.StatusSeeOther)
	}
}

// DeleteUser deletes the user named in the path.
func DeleteUser(ul UserList, basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ul.Delete(r.Context(), models.UserID(mux.Vars(r)["user-id"]))
		http.Redirect(w, r, pagePath(basePath), http.StatusSeeOther)
	}
}

// CancelEdit returns the form to creating a new user.
func CancelEdit(ul UserList, basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ul.CancelEdit()
		http.Redirect(w, r, pagePath(basePath), http.StatusSeeOther)
	}
}

// GetState godoc
// @Summary Get the user list state
// @Description Returns the users, the form draft, the editing target, the in-flight flags and the error banner.
// @Tags state
// @Produce json
// @Success 200 {object} models.Response{data=userlist.State}
// @Router /api/state [get]
func GetState(ul UserList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services.HandleSuccessResponse(w, http.StatusOK, ul.State())
	}
}

// PatchDraft godoc
// @Summary Update one field of the form draft
// @Tags state
// @Accept json
// @Produce json
// @Param request body models.DraftFieldRequest true "Draft field"
// @Success 200 {object} models.Response{data=models.Draft}
// @Failure 400 {object} models.Response
// @Router /api/draft [patch]
func PatchDraft(ul UserList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		var req models.DraftFieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Debug().Err(err).Msg("Invalid request payload")
			services.HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid request payload"))
			return
		}

		if err := ul.UpdateDraftField(req.Field, req.Value); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, userlist.ErrUnknownField) {
				status = http.StatusBadRequest
			}
			services.HandleErrResponse(w, status, err)
			return
		}

		services.HandleSuccessResponse(w, http.StatusOK, ul.State().Draft)
	}
}

func pagePath(basePath string) string {
	return basePath + "/"
}
