// Package models содержит доменные структуры: администраторы, клиенты, платежи,
// история действий и отчёты дашборда, а также DTO входящих запросов.
package models

import "time"

// Admin сотрудник, работающий с панелью администратора.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResult ответ на успешные вход и регистрацию.
type AuthResult struct {
	Token string       `json:"token"`
	Admin AdminSummary `json:"admin"`
}

// AdminSummary публичная часть данных администратора.
type AdminSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Summary возвращает публичную часть данных администратора.
func (a Admin) Summary() AdminSummary {
	return AdminSummary{ID: a.ID, Email: a.Email, FullName: a.FullName}
}
