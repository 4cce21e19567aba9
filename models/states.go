// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Application states are the payloads carried inside envelopes. The sync
// layer never inspects them; they are defined here for the applications
// themselves, for default construction on first run, and for tests.

// FinanceState is the finance tracker's full state.
type FinanceState struct {
	Accounts      []Account       `json:"accounts"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	FixedExpenses []FixedExpense  `json:"fixed_expenses"`
	Loans         []Loan          `json:"loans"`
	Positions     []StockPosition `json:"positions"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
}

// Account is a single money account tracked by the finance application.
type Account struct {
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// FixedExpense is a recurring monthly expense.
type FixedExpense struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Loan describes an outstanding loan and its repayment terms.
type Loan struct {
	Name           string          `json:"name"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

// StockPosition is a held equity position.
type StockPosition struct {
	Ticker   string          `json:"ticker"`
	Shares   decimal.Decimal `json:"shares"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

// NotesState is the notes application's full state.
type NotesState struct {
	Notes []Note `json:"notes"`
}

// Note is a single user note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TasksState is the task manager's full state.
type TasksState struct {
	Tasks []Task `json:"tasks"`
}

// Task is a single to-do item.
type Task struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Done  bool       `json:"done"`
	Due   *time.Time `json:"due,omitempty"`
}

// SettingsState holds suite-wide user preferences.
type SettingsState struct {
	Theme        string `json:"theme"`
	BaseCurrency string `json:"base_currency"`
	AIModel      string `json:"ai_model"`
}

// DefaultFinanceState returns the state a fresh finance tracker starts with.
func DefaultFinanceState() FinanceState {
	return FinanceState{
		Accounts:      []Account{},
		MonthlyBudget: decimal.Zero,
		FixedExpenses: []FixedExpense{},
		Loans:         []Loan{},
		Positions:     []StockPosition{},
		ExchangeRate:  decimal.NewFromInt(1),
	}
}

// DefaultNotesState returns an empty notes state.
func DefaultNotesState() NotesState {
	return NotesState{Notes: []Note{}}
}

// DefaultTasksState returns an empty tasks state.
func DefaultTasksState() TasksState {
	return TasksState{Tasks: []Task{}}
}

// DefaultSettingsState returns suite defaults for a first run.
func DefaultSettingsState() SettingsState {
	return SettingsState{Theme: "system", BaseCurrency: "USD"}
}

// DefaultStateFor returns the JSON-encoded first-run payload for namespace.
// The second return is false for a namespace with no registered application.
func DefaultStateFor(namespace string) (json.RawMessage, bool) {
	var state any
	switch namespace {
	case NamespaceFinance:
		state = DefaultFinanceState()
	case NamespaceNotes:
		state = DefaultNotesState()
	case NamespaceTasks:
		state = DefaultTasksState()
	case NamespaceSettings:
		state = DefaultSettingsState()
	default:
		return nil, false
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return nil, false
	}
	return raw, true
}
