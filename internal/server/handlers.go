package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MonishPuttu/DRAWIFY/internal/wire"
)

// API bundles the HTTP surface around the websocket core: token mint
// endpoints and the snapshot read.
type API struct {
	manager *Manager
	auth    *Auth
	users   *UserStore
	history HistoryStore
}

func NewAPI(manager *Manager, auth *Auth, users *UserStore, history HistoryStore) *API {
	return &API{manager: manager, auth: auth, users: users, history: history}
}

// Router wires every route, websocket endpoint included.
func (api *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", api.manager.ServeWS)
	r.HandleFunc("/auth/signup", api.SignupHandler).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", api.LoginHandler).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{roomId}/chats", api.ServeSnapshot).Methods(http.MethodGet)
	return r
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (api *API) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Username == "" || c.Password == "" {
		http.Error(w, "invalid credentials payload", http.StatusBadRequest)
		return
	}

	_, err := api.users.Create(r.Context(), c.Username, c.Password)
	if errors.Is(err, ErrUserExists) {
		http.Error(w, "user already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Println("could not create user:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (api *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid credentials payload", http.StatusBadRequest)
		return
	}

	user, err := api.users.Authenticate(r.Context(), c.Username, c.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Println("error during auth:", err)
		}
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "Invalid credentials")
		return
	}

	token, err := api.auth.Create(user.ID)
	if err != nil {
		log.Println("could not create token for user", user.Username)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, token)
}

// ServeSnapshot returns the most recent persisted events of a room, capped
// at SnapshotCap and lz4-compressed, oldest first so the client can replay
// them through its normal apply path.
func (api *API) ServeSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["roomId"]

	records, err := api.history.Recent(r.Context(), roomID, SnapshotCap)
	if err != nil {
		log.Printf("could not load history for room %s: %v\n", roomID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(wire.Snapshot{Messages: records})
	if err != nil {
		log.Println("could not marshal snapshot:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	compressed, err := wire.Compress(payload)
	if err != nil {
		log.Printf("could not compress snapshot for room %s: %v\n", roomID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(compressed)
}
