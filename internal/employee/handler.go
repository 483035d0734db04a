// internal/employee/handler.go
package employee

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/auth"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/utils"
)

// Handler serves employee routes.
type Handler struct {
	Repo *Repository
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// Login handles POST /login: validates email/password and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	e, err := h.Repo.FindByEmail(req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(e.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(e.ID, e.Role == RoleAdmin)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token, Employee: e})
}

// Create handles POST /employees.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if !ValidRole(dto.Role) {
		http.Error(w, "role must be instructor, assistant or admin", http.StatusUnprocessableEntity)
		return
	}
	if dto.BaseSalary.IsNegative() {
		http.Error(w, "baseSalary cannot be negative", http.StatusUnprocessableEntity)
		return
	}

	e := Employee{
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Role:       dto.Role,
		SchoolID:   dto.SchoolID,
		BaseSalary: dto.BaseSalary,
	}
	// Without an explicit password, onboard with a temporary one returned
	// a single time in the response.
	password := dto.Password
	temporary := ""
	if password == "" {
		var err error
		if temporary, err = utils.GenerateTemporaryPassword(); err != nil {
			http.Error(w, "could not generate password", http.StatusInternalServerError)
			return
		}
		password = temporary
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}
	e.PasswordHash = hash

	if err := h.Repo.Create(&e); err != nil {
		http.Error(w, "could not create employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	resp := map[string]interface{}{"employee": e}
	if temporary != "" {
		resp["temporaryPassword"] = temporary
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// List handles GET /employees with optional role and schoolId filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	var schoolID uint
	if s := r.URL.Query().Get("schoolId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid schoolId", http.StatusBadRequest)
			return
		}
		schoolID = uint(id)
	}

	list, err := h.Repo.List(role, schoolID)
	if err != nil {
		http.Error(w, "could not fetch employees", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /employees/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid employee ID", http.StatusBadRequest)
		return
	}

	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// Update handles PUT /employees/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid employee ID", http.StatusBadRequest)
		return
	}

	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if !ValidRole(dto.Role) {
		http.Error(w, "role must be instructor, assistant or admin", http.StatusUnprocessableEntity)
		return
	}

	e.FirstName = dto.FirstName
	e.LastName = dto.LastName
	e.Email = dto.Email
	e.Phone = dto.Phone
	e.Role = dto.Role
	e.SchoolID = dto.SchoolID
	e.BaseSalary = dto.BaseSalary
	if dto.Password != "" {
		hash, err := utils.HashPassword(dto.Password)
		if err != nil {
			http.Error(w, "could not hash password", http.StatusInternalServerError)
			return
		}
		e.PasswordHash = hash
	}

	if err := h.Repo.Update(e); err != nil {
		http.Error(w, "could not update employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// Delete handles DELETE /employees/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid employee ID", http.StatusBadRequest)
		return
	}

	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch employee", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Delete(e); err != nil {
		http.Error(w, "could not delete employee", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
