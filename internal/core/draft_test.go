package core

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewExpenseDraftDefaults(t *testing.T) {
	d := NewExpenseDraft(time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC))
	if d.Date != "2026-10-15" || d.Category != OfficeSupplies || d.PaymentMethod != CreditCard {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if d.Amount != "" || d.Description != "" || d.IsTaxDeductible {
		t.Fatalf("expected blank amount, description and flag: %+v", d)
	}
}

func TestExpenseDraftValidateReportsEveryField(t *testing.T) {
	_, err := ExpenseDraft{Amount: "-3", Description: "   ", Category: Meals, PaymentMethod: Cash}.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is(err, ErrValidation)")
	}
	want := map[string]string{
		FieldDate:        "Date is required",
		FieldAmount:      "Valid amount is required",
		FieldDescription: "Description is required",
	}
	for field, msg := range want {
		if verr.Message(field) != msg {
			t.Fatalf("%s: got %q, want %q", field, verr.Message(field), msg)
		}
	}
}

func TestExpenseDraftValidateBuildsExpense(t *testing.T) {
	d := ExpenseDraft{
		Date:            "2024-01-01",
		Amount:          "99.50",
		Category:        Meals,
		Description:     `Team lunch "Q1"`,
		PaymentMethod:   Cash,
		IsTaxDeductible: true,
	}
	e, err := d.Validate()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if e.ID != "" || e.Amount.Cents != 9950 || !e.Date.Equal(NewDate(2024, 1, 1).Time) || !e.IsTaxDeductible {
		t.Fatalf("unexpected expense %+v", e)
	}

	round := DraftFromExpense(e)
	if round.Amount != "99.5" || round.Date != "2024-01-01" || round.Description != d.Description {
		t.Fatalf("unexpected draft from expense %+v", round)
	}
}

func TestBudgetDraftIsAWorkingCopy(t *testing.T) {
	committed := DefaultBudgets(Money{Cents: 100000})
	d := NewBudgetDraft(committed)

	if err := d.SetInput(Travel, "2500.75"); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if err := d.SetInput(Meals, "not a number"); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if err := d.SetInput(Software, ""); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if d.Amount(Travel).Cents != 250075 || !d.Amount(Meals).IsZero() || !d.Amount(Software).IsZero() {
		t.Fatalf("unexpected working amounts: travel=%v meals=%v software=%v", d.Amount(Travel), d.Amount(Meals), d.Amount(Software))
	}
	if committed[1].Amount.Cents != 100000 {
		t.Fatalf("committed set was modified: %+v", committed[1])
	}
	if err := d.Set("Groceries", Money{}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := CheckBudgetSet(d.Budgets()); err != nil {
		t.Fatalf("draft budgets should form a valid set: %v", err)
	}
}

func TestBudgetDraftSetInputTreatsNonFiniteAndHugeAsZero(t *testing.T) {
	d := NewBudgetDraft(DefaultBudgets(Money{Cents: 100000}))
	for _, in := range []string{"Inf", "+Infinity", "-Inf", "NaN", "1e300", "-5"} {
		if err := d.SetInput(Travel, in); err != nil {
			t.Fatalf("SetInput(%q): %v", in, err)
		}
		if !d.Amount(Travel).IsZero() {
			t.Fatalf("SetInput(%q) = %d cents, want 0", in, d.Amount(Travel).Cents)
		}
	}
	if err := d.SetInput(Travel, "1e3"); err != nil || d.Amount(Travel).Cents != 100000 {
		t.Fatalf("SetInput(1e3) = %d cents (err=%v), want 100000", d.Amount(Travel).Cents, err)
	}
}

func pngHeader(size int) []byte {
	b := make([]byte, size)
	copy(b, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	return b
}

func TestAttachReceipt(t *testing.T) {
	d := NewExpenseDraft(time.Now())
	img := pngHeader(64)
	if err := d.AttachReceipt(img); err != nil {
		t.Fatalf("AttachReceipt: %v", err)
	}
	prefix := "data:image/png;base64,"
	if !strings.HasPrefix(d.ReceiptImage, prefix) {
		t.Fatalf("unexpected data URL %q", d.ReceiptImage[:30])
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(d.ReceiptImage, prefix))
	if err != nil || !bytes.Equal(decoded, img) {
		t.Fatalf("receipt did not round trip (err=%v)", err)
	}

	previous := d.ReceiptImage
	if err := d.AttachReceipt(pngHeader(MaxAttachmentSize + 1)); !errors.Is(err, ErrAttachmentTooLarge) {
		t.Fatalf("expected ErrAttachmentTooLarge, got %v", err)
	}
	if err := d.AttachReceipt([]byte("plain text, not an image")); !errors.Is(err, ErrUnsupportedAttachment) {
		t.Fatalf("expected ErrUnsupportedAttachment, got %v", err)
	}
	if d.ReceiptImage != previous {
		t.Fatalf("rejected attachment replaced the existing receipt")
	}

	d.ClearReceipt()
	if d.ReceiptImage != "" {
		t.Fatalf("expected receipt cleared")
	}
}
