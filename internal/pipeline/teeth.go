package pipeline

import "go-dental-forensics/pkg/models"

// toothIdentity is one entry of the FDI numbering sequence.
type toothIdentity struct {
	number string
	name   string
	kind   string
}

// fdiSequence maps detection order (left to right) onto FDI two-digit
// numbering: the upper right quadrant 18..11 followed by the upper left
// quadrant 21..28, covering up to sixteen detected regions.
var fdiSequence = []toothIdentity{
	{"18", "Third Molar", "Wisdom Tooth"},
	{"17", "Second Molar", "Molar"},
	{"16", "First Molar", "Molar"},
	{"15", "Second Premolar", "Premolar"},
	{"14", "First Premolar", "Premolar"},
	{"13", "Canine", "Canine"},
	{"12", "Lateral Incisor", "Incisor"},
	{"11", "Central Incisor", "Incisor"},
	{"21", "Central Incisor", "Incisor"},
	{"22", "Lateral Incisor", "Incisor"},
	{"23", "Canine", "Canine"},
	{"24", "First Premolar", "Premolar"},
	{"25", "Second Premolar", "Premolar"},
	{"26", "First Molar", "Molar"},
	{"27", "Second Molar", "Molar"},
	{"28", "Third Molar", "Wisdom Tooth"},
}

// applyNumbering annotates assessments with FDI identity in detection order.
// Regions beyond the sequence keep empty identity fields.
func applyNumbering(assessments []models.ToothAssessment) {
	for i := range assessments {
		if i >= len(fdiSequence) {
			return
		}
		assessments[i].FDINumber = fdiSequence[i].number
		assessments[i].ToothName = fdiSequence[i].name
		assessments[i].ToothType = fdiSequence[i].kind
	}
}
