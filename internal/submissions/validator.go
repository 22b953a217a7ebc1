package submissions

import (
	"fmt"
	"strings"

	"github.com/altproje-dev/altproje/internal/types"
)

// Payload is the raw form input for a submission, before any normalization.
type Payload struct {
	Title          string `json:"title"`
	MainArea       string `json:"mainArea"`
	ProjectType    string `json:"projectType"`
	ProjectSubType string `json:"projectSubType"`
	Subject        string `json:"subject"`
	ThematicArea   string `json:"thematicArea"`
	Purpose        string `json:"purpose"`
	Method         string `json:"method"`
	ExpectedResult string `json:"expectedResult"`
	SurveyApplied  bool   `json:"surveyApplied"`
}

// NormalizedSubmission is a persist-ready submission. Exactly one of Subject
// and ThematicArea is non-nil, decided by the sub type; IsPublic is always
// false on the way in.
type NormalizedSubmission struct {
	Title          string
	MainArea       string
	ProjectType    string
	ProjectSubType string
	Subject        *string
	ThematicArea   *string
	Purpose        string
	Method         string
	ExpectedResult string
	SurveyApplied  bool
	IsPublic       bool
	OwnerID        uint
}

type wordBound struct {
	min, max int
}

var (
	purposeBounds = map[string]wordBound{
		types.SubTypeA: {min: 20, max: 50},
		types.SubTypeB: {min: 50, max: 150},
	}
	textBound = wordBound{min: 50, max: 150}
)

// WordBounds reports the word-count bound for a free-text field under the
// given sub type. ok is false for fields without a bound.
func WordBounds(field, subType string) (min, max int, ok bool) {
	switch field {
	case "purpose":
		b, found := purposeBounds[subType]
		if !found {
			return 0, 0, false
		}
		return b.min, b.max, true
	case "method", "expectedResult":
		return textBound.min, textBound.max, true
	}
	return 0, 0, false
}

// ValidateForCreate checks p against the full rule set and returns a
// normalized, persist-ready record owned by ownerID.
//
// The structural checks (title, main area, sub type, project type, the
// subtype-conditional topic field) run in order and stop at the first
// failure; the three word-count checks accumulate so the caller gets every
// bad text field in one round trip.
func ValidateForCreate(ownerID uint, p Payload) (*NormalizedSubmission, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(p.Title) == "" {
		verr.add("title", "Alt proje adı gereklidir")
		return nil, verr
	}
	if !types.ValidMainArea(p.MainArea) {
		verr.add("mainArea", "Geçersiz ana alan seçimi")
		return nil, verr
	}
	if !types.ValidSubType(p.ProjectSubType) {
		verr.add("projectSubType", "Geçersiz proje alt türü")
		return nil, verr
	}
	if strings.TrimSpace(p.ProjectType) == "" || !types.ValidProjectType(p.ProjectSubType, p.ProjectType) {
		verr.add("projectType", "Seçilen alt tür için geçersiz proje türü")
		return nil, verr
	}

	n := &NormalizedSubmission{
		Title:          p.Title,
		MainArea:       p.MainArea,
		ProjectType:    p.ProjectType,
		ProjectSubType: p.ProjectSubType,
		Purpose:        p.Purpose,
		Method:         p.Method,
		ExpectedResult: p.ExpectedResult,
		SurveyApplied:  p.SurveyApplied,
		IsPublic:       false,
		OwnerID:        ownerID,
	}

	// Rule 4: the sub type decides which topic field is required; the other
	// one is cleared no matter what the caller sent.
	switch p.ProjectSubType {
	case types.SubTypeA:
		thematic := strings.TrimSpace(p.ThematicArea)
		if thematic == "" {
			verr.add("thematicArea", "4006-A için tematik alan gereklidir")
			return nil, verr
		}
		n.ThematicArea = &thematic
		n.Subject = nil
	case types.SubTypeB:
		subject := strings.TrimSpace(p.Subject)
		if subject == "" {
			verr.add("subject", "4006-B için alt proje konusu gereklidir")
			return nil, verr
		}
		n.Subject = &subject
		n.ThematicArea = nil
	}

	// Rules 5-7 accumulate.
	pb := purposeBounds[p.ProjectSubType]
	if count := CountWords(p.Purpose); count < pb.min || count > pb.max {
		verr.add("purpose", fmt.Sprintf("Amaç %d-%d kelime arasında olmalıdır", pb.min, pb.max))
	}
	if count := CountWords(p.Method); count < textBound.min || count > textBound.max {
		verr.add("method", fmt.Sprintf("Yöntem %d-%d kelime arasında olmalıdır", textBound.min, textBound.max))
	}
	if count := CountWords(p.ExpectedResult); count < textBound.min || count > textBound.max {
		verr.add("expectedResult", fmt.Sprintf("Beklenen sonuç %d-%d kelime arasında olmalıdır", textBound.min, textBound.max))
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	return n, nil
}

// ValidateForUpdate is ValidateForCreate behind an ownership gate: only the
// record's owner may update it. A non-owner always gets an
// AuthorizationError, never a ValidationError, even for a bad payload.
func ValidateForUpdate(existingOwnerID, callerID uint, p Payload) (*NormalizedSubmission, error) {
	if callerID != existingOwnerID {
		return nil, &AuthorizationError{Reason: "Bu kayıt üzerinde işlem yapma yetkiniz yok"}
	}
	return ValidateForCreate(existingOwnerID, p)
}
