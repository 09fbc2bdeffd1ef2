package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineStatus indicates the state of a fine. paid and cancelled are terminal.
type FineStatus string

const (
	FinePending   FineStatus = "en_attente"
	FinePaid      FineStatus = "payee"
	FineCancelled FineStatus = "annulee"
)

// FineCategory groups fines for reporting.
type FineCategory string

const (
	CategoryLateness     FineCategory = "retard"
	CategoryAbsence      FineCategory = "absence"
	CategoryFinancial    FineCategory = "financier"
	CategoryOrganisation FineCategory = "organisation"
	CategoryDiscipline   FineCategory = "discipline"
	CategoryOther        FineCategory = "autre"
)

// FineType identifies an entry of the association's fine catalog.
type FineType string

const (
	TypeSimpleLateness    FineType = "retard_simple"
	TypeMajorLateness     FineType = "grand_retard"
	TypeExcusedAbsence    FineType = "absence_justifiee"
	TypeUnexcusedAbsence  FineType = "absence_non_justifiee"
	TypeHostLateness      FineType = "retard_hote"
	TypeMissedDues        FineType = "echec_cotisation"
	TypeDefaultedDues     FineType = "defaillance_cotisation"
	TypeLateFoodMoney     FineType = "retard_argent_nourriture"
	TypeNonCashPayment    FineType = "argent_non_especes"
	TypeCulinarySabotage  FineType = "sabotage_culinaire"
	TypeLateLoanRepayment FineType = "retard_remboursement_pret"
	TypeConfidentiality   FineType = "violation_confidentialite"
	TypeOther             FineType = "autre"
)

// FineTypeInfo describes a catalog entry: a human label, the canonical amount
// and the reporting category.
type FineTypeInfo struct {
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Category FineCategory    `json:"category"`
}

// FineCatalog is the fixed catalog of fine types with their canonical amounts.
// Amounts are in whole currency units, as decided by the association rules.
var FineCatalog = map[FineType]FineTypeInfo{
	TypeSimpleLateness:    {Label: "Retard simple (après 19h30)", Amount: decimal.NewFromInt(10), Category: CategoryLateness},
	TypeMajorLateness:     {Label: "Grand retard (plus de 30 min)", Amount: decimal.NewFromInt(20), Category: CategoryLateness},
	TypeExcusedAbsence:    {Label: "Absence justifiée 24h avant", Amount: decimal.NewFromInt(10), Category: CategoryAbsence},
	TypeUnexcusedAbsence:  {Label: "Absence ou arrivée après 20h59", Amount: decimal.NewFromInt(50), Category: CategoryAbsence},
	TypeHostLateness:      {Label: "Retard de l'hôte", Amount: decimal.NewFromInt(20), Category: CategoryLateness},
	TypeMissedDues:        {Label: "Échec de cotisation le jour J", Amount: decimal.NewFromInt(50), Category: CategoryFinancial},
	TypeDefaultedDues:     {Label: "Défaillance de cotisation", Amount: decimal.NewFromInt(100), Category: CategoryFinancial},
	TypeLateFoodMoney:     {Label: "Retard sur l'envoi d'argent nourriture", Amount: decimal.NewFromInt(15), Category: CategoryFinancial},
	TypeNonCashPayment:    {Label: "Argent non remis en espèces", Amount: decimal.NewFromInt(5), Category: CategoryFinancial},
	TypeCulinarySabotage:  {Label: "Sabotage culinaire", Amount: decimal.NewFromInt(50), Category: CategoryOrganisation},
	TypeLateLoanRepayment: {Label: "Retard remboursement prêt (par 7 jours)", Amount: decimal.NewFromInt(10), Category: CategoryFinancial},
	TypeConfidentiality:   {Label: "Violation de confidentialité", Amount: decimal.NewFromInt(90), Category: CategoryDiscipline},
	TypeOther:             {Label: "Autre infraction", Amount: decimal.Zero, Category: CategoryOther},
}

// Fine represents a monetary penalty owed by a member. Fines are never
// physically deleted; pay/cancel are the only transitions out of pending.
type Fine struct {
	FineID      string          `json:"fineID"`
	MemberID    string          `json:"memberID"`
	MeetingID   *string         `json:"meetingID,omitempty"` // set when issued during a meeting
	LoanID      *string         `json:"loanID,omitempty"`    // set on loan late-repayment penalties
	Type        FineType        `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    FineCategory    `json:"category"`
	Description string          `json:"description"`
	Status      FineStatus      `json:"status"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	Automatic   bool            `json:"automatic"`
	AuditFields
}

// IsFinal reports whether the fine reached a terminal status.
func (f *Fine) IsFinal() bool {
	return f.Status == FinePaid || f.Status == FineCancelled
}
