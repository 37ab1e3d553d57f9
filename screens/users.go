package screens

import (
	"log"
	"sync"

	"crmconsole-backend/models"
	"crmconsole-backend/store"

	"github.com/google/uuid"
)

// PaymentNotifier is pinged after a payment approval lands, so the member
// can be told their access is live. Implemented by the Twilio service.
type PaymentNotifier interface {
	PaymentApproved(profile models.Profile)
}

// UserEditForm holds the edit dialog's editable fields, seeded from the
// selected record when the dialog opens.
type UserEditForm struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PaymentStatus string `json:"payment_status"`
	Whatsapp      string `json:"whatsapp"`
}

// UserEditState is the open edit dialog: which user, and the form snapshot.
// The snapshot is not re-synced with concurrent changes while open.
type UserEditState struct {
	UserID uuid.UUID    `json:"user_id"`
	Form   UserEditForm `json:"form"`
}

// UserAdminState is the screen state handed to the HTTP layer.
type UserAdminState struct {
	Users       []models.Profile `json:"users"`
	Loading     bool             `json:"loading"`
	LoadedUsers int              `json:"loaded_users"`
	TotalUsers  int64            `json:"total_users"`
	Editing     *UserEditState   `json:"editing"`
}

// UserAdminScreen coordinates the user-administration screen: it owns the
// loaded profile list, the loading flag, the independent total count, and
// the edit dialog. The list is mutated only through the success-gated fold
// in each mutation; failed writes never touch it.
type UserAdminScreen struct {
	mu       sync.Mutex
	store    store.Store
	notify   Notifier
	payments PaymentNotifier

	users      []models.Profile
	loading    bool
	totalUsers int64
	editing    *UserEditState

	// refreshSeq tags each read; responses older than appliedSeq are
	// discarded so a slow refresh cannot overwrite a newer one.
	refreshSeq uint64
	appliedSeq uint64
}

func NewUserAdminScreen(st store.Store, notify Notifier, payments PaymentNotifier) *UserAdminScreen {
	return &UserAdminScreen{store: st, notify: notify, payments: payments, loading: true}
}

// Refresh reloads the full profile list (created_at descending) and the
// unfiltered total count. On read failure the previously loaded records are
// kept and a recoverable error is notified.
func (s *UserAdminScreen) Refresh() {
	s.mu.Lock()
	s.loading = true
	s.refreshSeq++
	seq := s.refreshSeq
	s.mu.Unlock()

	profiles, err := s.store.ListProfiles()
	count, countErr := s.store.CountProfiles()

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return // a newer refresh already landed
	}
	s.appliedSeq = seq
	s.loading = false
	// The count read is independent of the list read; a count failure is
	// logged but never notified.
	if countErr != nil {
		log.Printf("erro ao contar usuários: %v", countErr)
	} else {
		s.totalUsers = count
	}
	if err != nil {
		log.Printf("erro ao carregar usuários: %v", err)
		s.notify.Error("Erro ao carregar usuários", "Não foi possível carregar a lista de usuários.")
		return
	}
	s.users = profiles
}

// ApprovePayment releases a member's access by setting payment_status to
// aprovado. The local record is folded only after the write succeeds.
func (s *UserAdminScreen) ApprovePayment(userID uuid.UUID) {
	err := s.store.UpdateProfile(userID, map[string]interface{}{
		"payment_status": models.PaymentApproved,
	})
	if err != nil {
		log.Printf("erro ao aprovar pagamento: %v", err)
		s.notify.Error("Erro ao aprovar pagamento", describe(err, "Não foi possível aprovar o pagamento."))
		return
	}

	s.mu.Lock()
	var approved *models.Profile
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users[i].PaymentStatus = models.PaymentApproved
			copied := s.users[i]
			approved = &copied
			break
		}
	}
	s.mu.Unlock()

	s.notify.Success("Pagamento aprovado", "O acesso do usuário foi liberado com sucesso.")
	if s.payments != nil && approved != nil {
		s.payments.PaymentApproved(*approved)
	}
}

// ToggleAdmin flips is_admin relative to the caller-supplied current value;
// the notification text depends on the direction.
func (s *UserAdminScreen) ToggleAdmin(userID uuid.UUID, currentStatus bool) {
	err := s.store.UpdateProfile(userID, map[string]interface{}{
		"is_admin": !currentStatus,
	})
	if err != nil {
		log.Printf("erro ao alterar status de admin: %v", err)
		s.notify.Error("Erro ao alterar permissões", describe(err, "Não foi possível alterar as permissões do usuário."))
		return
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users[i].IsAdmin = !currentStatus
			break
		}
	}
	s.mu.Unlock()

	if currentStatus {
		s.notify.Success("Permissão de admin removida", "O usuário não é mais um administrador.")
	} else {
		s.notify.Success("Permissão de admin concedida", "O usuário agora é um administrador.")
	}
}

// OpenEdit opens the edit dialog seeded with a snapshot of the record's
// current fields.
func (s *UserAdminScreen) OpenEdit(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID != userID {
			continue
		}
		form := UserEditForm{
			Email:         user.Email,
			PaymentStatus: user.PaymentStatus,
		}
		if user.FullName != nil {
			form.FullName = *user.FullName
		}
		if user.Whatsapp != nil {
			form.Whatsapp = *user.Whatsapp
		}
		s.editing = &UserEditState{UserID: userID, Form: form}
		return
	}
	s.notify.Error("Usuário não encontrado", "O usuário selecionado não está na lista carregada.")
}

// SaveEdit writes all four editable fields in one update. Empty whatsapp is
// stored as NULL, never as an empty string. On failure the list and the open
// dialog are left untouched.
func (s *UserAdminScreen) SaveEdit(form UserEditForm) {
	s.mu.Lock()
	editing := s.editing
	s.mu.Unlock()
	if editing == nil {
		return
	}

	var whatsapp interface{}
	if form.Whatsapp != "" {
		whatsapp = form.Whatsapp
	}
	err := s.store.UpdateProfile(editing.UserID, map[string]interface{}{
		"full_name":      form.FullName,
		"email":          form.Email,
		"payment_status": form.PaymentStatus,
		"whatsapp":       whatsapp,
	})
	if err != nil {
		log.Printf("erro ao atualizar usuário: %v", err)
		s.notify.Error("Erro ao atualizar usuário", describe(err, "Não foi possível atualizar os dados do usuário."))
		return
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == editing.UserID {
			fullName := form.FullName
			s.users[i].FullName = &fullName
			s.users[i].Email = form.Email
			s.users[i].PaymentStatus = form.PaymentStatus
			if form.Whatsapp != "" {
				number := form.Whatsapp
				s.users[i].Whatsapp = &number
			} else {
				s.users[i].Whatsapp = nil
			}
			break
		}
	}
	s.editing = nil
	s.mu.Unlock()

	s.notify.Success("Usuário atualizado", "Os dados do usuário foram atualizados com sucesso.")
}

// CancelEdit closes the dialog and discards the snapshot.
func (s *UserAdminScreen) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// State returns the visible screen state, with the search filter applied
// locally over the loaded list.
func (s *UserAdminScreen) State(search string) UserAdminState {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := FilterProfiles(s.users, search)
	users := make([]models.Profile, len(filtered))
	copy(users, filtered)
	var editing *UserEditState
	if s.editing != nil {
		copied := *s.editing
		editing = &copied
	}
	return UserAdminState{
		Users:       users,
		Loading:     s.loading,
		LoadedUsers: len(s.users),
		TotalUsers:  s.totalUsers,
		Editing:     editing,
	}
}
