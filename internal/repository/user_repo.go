package repository

import (
	"encoding/json"
	"fmt"

	"frotacheck/internal/docstore"
	"frotacheck/internal/models"
)

const UsersCollection = "usuarios"

type UserRepo struct {
	store *docstore.Store
}

func NewUserRepo(store *docstore.Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	docs, err := r.store.Find(UsersCollection, map[string]any{"email": email}, &docstore.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docToUser(docs[0])
}

func (r *UserRepo) FindByID(id string) (*models.User, error) {
	doc, err := r.store.Get(UsersCollection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToUser(doc)
}

func (r *UserRepo) Create(user *models.User) (string, error) {
	return r.store.Insert(UsersCollection, map[string]any{
		"email":        user.Email,
		"passwordHash": user.PasswordHash,
		"name":         user.Name,
		"role":         user.Role,
		"createdAt":    user.CreatedAt,
	})
}

func docToUser(doc map[string]any) (*models.User, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal user doc: %w", err)
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}
