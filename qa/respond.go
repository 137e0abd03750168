package qa

import (
	"fmt"
	"strings"

	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// maxListedMatches caps rendered lists; anything beyond is summarized as
// a "+N more" suffix.
const maxListedMatches = 5

func sideEffectsResponse(med entities.Medication) string {
	if len(med.SideEffects) == 0 {
		return fmt.Sprintf("**Side Effects of %s:**\n\nNo specific side effects are listed in our database for %s. Please consult your doctor or pharmacist for more information.",
			med.TradeName, med.TradeName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Side Effects of %s:**\n\n", med.TradeName)
	for i, effect := range med.SideEffects {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s", effect)
	}
	b.WriteString("\n\nIf you experience severe side effects, contact your healthcare provider immediately.")

	return b.String()
}

func priceResponse(med entities.Medication) string {
	return fmt.Sprintf("**%s** is priced at %s.\n\nPlease note that prices may vary by location and pharmacy.",
		med.TradeName, med.Price)
}

func usageResponse(med entities.Medication) string {
	response := fmt.Sprintf("**%s** (%s) is used for:\n\n%s",
		med.TradeName, med.GenericName, med.Indications)

	if med.DosageForm != "" && med.Strength != "" {
		response += fmt.Sprintf("\n\nIt comes as %s with strength of %s.",
			med.DosageForm, med.Strength)
	}

	return response
}

func generalInfoResponse(med entities.Medication) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n\n", med.TradeName, med.GenericName)
	fmt.Fprintf(&b, "**Category:** %s\n\n", med.Category)
	fmt.Fprintf(&b, "**Used for:** %s\n\n", med.Indications)
	fmt.Fprintf(&b, "**Dosage Form:** %s\n", med.DosageForm)
	fmt.Fprintf(&b, "**Strength:** %s\n", med.Strength)
	fmt.Fprintf(&b, "**Quantity:** %s\n", med.Quantity)
	fmt.Fprintf(&b, "**Price:** %s\n", med.Price)
	fmt.Fprintf(&b, "**Origin:** %s\n\n", med.LocalImport)

	if len(med.SideEffects) > 0 {
		b.WriteString("**Common Side Effects:**\n")
		for i, effect := range med.SideEffects {
			if i == maxListedMatches {
				break
			}
			fmt.Fprintf(&b, "• %s\n", effect)
		}
		if len(med.SideEffects) > maxListedMatches {
			fmt.Fprintf(&b, "\nAnd %d more side effects.", len(med.SideEffects)-maxListedMatches)
		}
	}

	return b.String()
}

// conditionResponse lists medications whose category or indications
// mention the condition, case-insensitive. Substring matching again; the
// condition phrase comes straight from the question.
func conditionResponse(condition string, store interfaces.DataStore) string {
	conditionLower := strings.ToLower(condition)

	var matching []entities.Medication
	for _, med := range store.GetMedications() {
		if strings.Contains(strings.ToLower(med.Category), conditionLower) ||
			strings.Contains(strings.ToLower(med.Indications), conditionLower) {
			matching = append(matching, med)
		}
	}

	if len(matching) == 0 {
		return fmt.Sprintf("I couldn't find any medications specifically for '%s' in our database. Please try a different search term or consult with your healthcare provider.", condition)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are medications that might be used for %s:\n\n", condition)

	for i, med := range matching {
		if i == maxListedMatches {
			break
		}
		fmt.Fprintf(&b, "**%s** (%s)\n", med.TradeName, med.GenericName)
		fmt.Fprintf(&b, "• %s\n", med.Indications)
		fmt.Fprintf(&b, "• Price: %s\n\n", med.Price)
	}

	if len(matching) > maxListedMatches {
		fmt.Fprintf(&b, "And %d more. You can ask about any specific medication for more details.", len(matching)-maxListedMatches)
	}

	return b.String()
}

func storageResponse() string {
	return "Here are some general guidelines for storing medications properly:\n\n" +
		"1. Keep in a cool, dry place (avoid bathroom medicine cabinets which can be humid)\n" +
		"2. Store at room temperature (15-25°C or 59-77°F) unless specified otherwise\n" +
		"3. Keep away from direct sunlight\n" +
		"4. Store in original containers with labels intact\n" +
		"5. Keep medications out of reach of children and pets\n" +
		"6. Some medications require refrigeration - check the label\n" +
		"7. Don't use medications past their expiration date\n" +
		"8. Don't store different medications in the same container\n\n" +
		"Always check the specific storage instructions on your medication's packaging or ask your pharmacist for guidance."
}

func genericVsBrandResponse() string {
	return "Generic vs. Brand-Name Medications:\n\n" +
		"**Brand-Name Medications:**\n" +
		"• Developed and patented by pharmaceutical companies\n" +
		"• Usually more expensive\n" +
		"• Same active ingredients as their generic counterparts\n" +
		"• Undergo extensive testing before FDA approval\n\n" +
		"**Generic Medications:**\n" +
		"• Contain the same active ingredients as brand-name versions\n" +
		"• FDA-approved and meet the same quality standards\n" +
		"• Usually 80-85% less expensive\n" +
		"• May differ in inactive ingredients (colors, fillers, etc.)\n" +
		"• Become available after the brand-name patent expires\n\n" +
		"Both types are equally effective for most people. The main difference is cost. However, some patients with specific sensitivities may respond differently to inactive ingredients in generic versions."
}

// DefaultResponse is the fixed help message returned when no medication,
// condition or known question shape was recognized. Exported so callers
// and tests can compare against it verbatim.
func DefaultResponse() string {
	return "Thank you for your question. Based on our medication database, I don't have specific information about that query.\n\n" +
		"You can ask about specific medications by name, their side effects, prices, or uses. You can also ask about medications for specific conditions.\n\n" +
		"For example, try asking:\n" +
		"• \"What is Panadol used for?\"\n" +
		"• \"What are the side effects of Augmentin?\"\n" +
		"• \"How much does Lipitor cost?\"\n" +
		"• \"What medications are available for allergies?\"\n\n" +
		"For more specific medical advice tailored to your situation, I recommend consulting with your healthcare provider or pharmacist."
}
