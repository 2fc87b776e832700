package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Auth turns credentials into tokens and tokens into stable user ids. It is
// the only identity check the drawing core relies on.
type Auth struct {
	secret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{secret: secret}
}

func (a *Auth) Create(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(a.secret)
}

// Verify validates the token and returns the userId claim. Any failure means
// the connection carrying the token must be rejected.
func (a *Auth) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// User is the redis hash layout of one account.
type User struct {
	ID           string `redis:"id"`
	Username     string `redis:"username"`
	PasswordHash string `redis:"password_hash"`
}

// UserStore keeps accounts in redis hashes keyed by username.
type UserStore struct {
	rdb *redis.Client
}

func NewUserStore(rdb *redis.Client) *UserStore {
	return &UserStore{rdb: rdb}
}

func (s *UserStore) Create(ctx context.Context, username, password string) (User, error) {
	key := REDIS_KEYS.USER(username)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return User{}, err
	}
	if exists != 0 {
		return User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{ID: uuid.NewString(), Username: username, PasswordHash: string(hash)}
	if err := s.rdb.HSet(ctx, key, "id", user.ID, "username", user.Username, "password_hash", user.PasswordHash).Err(); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *UserStore) Authenticate(ctx context.Context, username, password string) (User, error) {
	key := REDIS_KEYS.USER(username)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return User{}, err
	}
	if exists == 0 {
		return User{}, ErrInvalidCredentials
	}

	var user User
	if err := s.rdb.HGetAll(ctx, key).Scan(&user); err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
