package qa

import (
	"strings"
	"testing"

	"github.com/pharmassist/medications-api/data"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

func newEngineStore() *data.MedicationStore {
	price := func(v float64) *float64 { return &v }

	store := data.NewMedicationStore()
	store.UpdateData([]entities.Medication{
		{
			ID: "0", TradeName: "Panadol", GenericName: "Paracetamol",
			Category: "Analgesic", Indications: "For relief of pain and fever",
			Price: "5.50", PriceNumeric: price(5.50),
			DosageForm: "Tablet", Strength: "500mg",
			SideEffects: []string{"Nausea", "Rash"},
		},
		{
			ID: "1", TradeName: "Lipitor", GenericName: "Atorvastatin",
			Category: "Statin", Indications: "Lowers cholesterol",
			Price: "25.00", PriceNumeric: price(25.00),
		},
		{
			ID: "2", TradeName: "Adol", GenericName: "Paracetamol",
			Category: "Analgesic", Indications: "Pain relief",
			Price: "N/A",
		},
		{
			ID: "3", TradeName: "Zyrtec", GenericName: "Cetirizine",
			Category: "Antihistamine", Indications: "For allergies",
			Price: "12.00", PriceNumeric: price(12.00),
		},
	})
	return store
}

func extractedIDs(medications []entities.Medication) []string {
	ids := make([]string, 0, len(medications))
	for _, med := range medications {
		ids = append(ids, med.ID)
	}
	return ids
}

func TestExtractMedications(t *testing.T) {
	store := newEngineStore()

	tests := []struct {
		name     string
		question string
		wantIDs  []string
	}{
		{"trade name", "what is lipitor used for", []string{"1"}},
		{"generic name pulls all sharing records", "tell me about paracetamol", []string{"0", "2"}},
		{"trade names before generic names", "panadol or atorvastatin", []string{"0", "2", "1"}},
		{"substring match inside longer name", "what about panadol", []string{"0", "2"}},
		{"no matches", "what treats migraine", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractedIDs(ExtractMedications(Normalize(tt.question), store))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected ids %v, got %v", tt.wantIDs, got)
			}
			for i, id := range tt.wantIDs {
				if got[i] != id {
					t.Errorf("expected id %s at %d, got %s", id, i, got[i])
				}
			}
		})
	}
}

// Names carrying punctuation must still match question text, whose own
// punctuation was stripped during normalization.
func TestExtractMedicationsPunctuatedNames(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	store := data.NewMedicationStore()
	store.UpdateData([]entities.Medication{
		{
			ID: "0", TradeName: "Co-codamol", GenericName: "Codeine/Paracetamol",
			Category: "Analgesic", Indications: "Moderate pain relief",
			Price: "8.00", PriceNumeric: price(8.00),
		},
		{
			ID: "1", TradeName: "Vitamin B.12", GenericName: "Cyanocobalamin",
			Category: "Supplement", Indications: "Vitamin deficiency",
			Price: "6.00", PriceNumeric: price(6.00),
		},
	})

	tests := []struct {
		name     string
		question string
		wantIDs  []string
	}{
		{"hyphenated trade name", "what is co-codamol used for", []string{"0"}},
		{"hyphen dropped by the asker", "what is cocodamol used for", []string{"0"}},
		{"slashed generic name", "tell me about codeine/paracetamol", []string{"0"}},
		{"dotted trade name", "how much does vitamin b.12 cost", []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractedIDs(ExtractMedications(Normalize(tt.question), store))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected ids %v, got %v", tt.wantIDs, got)
			}
			for i, id := range tt.wantIDs {
				if got[i] != id {
					t.Errorf("expected id %s at %d, got %s", id, i, got[i])
				}
			}
		})
	}
}

func TestAnswerUsage(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("What is Panadol used for?")

	want := "**Panadol** (Paracetamol) is used for:\n\nFor relief of pain and fever\n\nIt comes as Tablet with strength of 500mg."
	if answer != want {
		t.Errorf("unexpected usage answer:\n%q\nwant:\n%q", answer, want)
	}
}

func TestAnswerPrice(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("How much does Lipitor cost?")

	want := "**Lipitor** is priced at 25.00.\n\nPlease note that prices may vary by location and pharmacy."
	if answer != want {
		t.Errorf("unexpected price answer:\n%q\nwant:\n%q", answer, want)
	}
}

func TestAnswerSideEffects(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("What are the side effects of Panadol?")

	if !strings.HasPrefix(answer, "**Side Effects of Panadol:**") {
		t.Errorf("expected side effects heading, got:\n%q", answer)
	}
	if !strings.Contains(answer, "• Nausea") || !strings.Contains(answer, "• Rash") {
		t.Errorf("expected both side effects listed, got:\n%q", answer)
	}
}

func TestAnswerSideEffectsNoneListed(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("What are the side effects of Zyrtec?")

	if !strings.Contains(answer, "No specific side effects are listed in our database for Zyrtec") {
		t.Errorf("expected no-side-effects message, got:\n%q", answer)
	}
}

func TestAnswerCondition(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("What are medications for allergies?")

	if !strings.HasPrefix(answer, "Here are medications that might be used for allergies:") {
		t.Errorf("expected condition listing, got:\n%q", answer)
	}
	if !strings.Contains(answer, "**Zyrtec** (Cetirizine)") {
		t.Errorf("expected Zyrtec listed, got:\n%q", answer)
	}
}

func TestAnswerConditionNoMatches(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("What are medications for baldness?")

	want := "I couldn't find any medications specifically for 'baldness' in our database. Please try a different search term or consult with your healthcare provider."
	if answer != want {
		t.Errorf("unexpected no-match answer:\n%q", answer)
	}
}

func TestAnswerStorageTopic(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("How should I store my medications?")

	if !strings.HasPrefix(answer, "Here are some general guidelines for storing medications properly:") {
		t.Errorf("expected storage guidelines, got:\n%q", answer)
	}
}

func TestAnswerGenericVsBrandTopic(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("What is the difference between generic and brand drugs?")

	if !strings.HasPrefix(answer, "Generic vs. Brand-Name Medications:") {
		t.Errorf("expected generic vs brand answer, got:\n%q", answer)
	}
}

func TestAnswerDefault(t *testing.T) {
	engine := NewEngine(newEngineStore())

	answer := engine.Answer("hello there")

	if answer != DefaultResponse() {
		t.Errorf("expected default help message, got:\n%q", answer)
	}
}

func TestAnalyze(t *testing.T) {
	engine := NewEngine(newEngineStore())

	analysis := engine.Analyze("How much does Lipitor cost?")

	if analysis.Intent != IntentPrice {
		t.Errorf("expected price intent, got %s", analysis.Intent)
	}
	if len(analysis.Medications) != 1 || analysis.Medications[0].TradeName != "Lipitor" {
		t.Errorf("expected Lipitor extracted, got %v", extractedIDs(analysis.Medications))
	}
	if analysis.Condition != "" {
		t.Errorf("expected no condition, got %q", analysis.Condition)
	}
}
