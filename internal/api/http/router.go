package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterDeps collects everything the router wires together. StaticDir is
// empty when local file serving is disabled.
type RouterDeps struct {
	Members   *MemberHandler
	Uploads   *UploadHandler
	Auth      *AuthHandler
	Admin     *AuthMiddleware
	StaticDir string
}

// NewRouter builds the full route table.
//
//	POST /api/members                    public intake
//	POST /api/upload                     public file upload
//	POST /api/members/analyze-category   public category helper
//	POST /api/admin/login                admin login
//	GET  /api/admin/members              admin list (q, status filters)
//	GET  /api/admin/members/{id}         admin detail
//	PUT  /api/admin/members/{id}/status  admin review decision
//	GET  /api/admin/members/export       admin CSV export
//	GET  /static/...                     uploaded files (local storage)
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/members", deps.Members.Submit).Methods(http.MethodPost)
	r.HandleFunc("/api/members/analyze-category", deps.Members.AnalyzeCategory).Methods(http.MethodPost)
	r.HandleFunc("/api/upload", deps.Uploads.Upload).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/login", deps.Auth.Login).Methods(http.MethodPost)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(deps.Admin.RequireAdmin)
	admin.HandleFunc("/members", deps.Members.List).Methods(http.MethodGet)
	admin.HandleFunc("/members/export", deps.Members.ExportCSV).Methods(http.MethodGet)
	admin.HandleFunc("/members/{id:[0-9]+}", deps.Members.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/members/{id:[0-9]+}/status", deps.Members.UpdateStatus).Methods(http.MethodPut)

	if deps.StaticDir != "" {
		r.PathPrefix("/static/").Handler(
			http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))),
		)
	}

	return r
}
