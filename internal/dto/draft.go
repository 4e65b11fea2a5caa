package dto

// DraftKind selects the guidance-document template to draft.
type DraftKind string

const (
	DraftParentLetter   DraftKind = "parent_letter"
	DraftInterviewNote  DraftKind = "interview_note"
	DraftObservationRpt DraftKind = "observation_report"
)

// DraftRequest asks the drafting service for a document skeleton.
type DraftRequest struct {
	Kind        DraftKind `json:"kind" validate:"required,oneof=parent_letter interview_note observation_report"`
	StudentName string    `json:"student_name" validate:"required"`
	Points      []string  `json:"points" validate:"required,min=1,dive,required"`
}

// DraftResponse carries the drafted text back to the client.
type DraftResponse struct {
	Kind  DraftKind `json:"kind"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
}
