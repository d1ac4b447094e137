package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	BadgeInvalid     = Definition{Code: "BADGE_INVALID", Message: "Badge code or PIN invalid"}
	Unauthorized     = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID    = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	StaffNotFound    = Definition{Code: "STAFF_NOT_FOUND", Message: "Staff user not found"}
	StaffDeactivated = Definition{Code: "STAFF_DEACTIVATED", Message: "Staff user deactivated"}
)

// 巡查范围错误。
var (
	InvalidShift     = Definition{Code: "INVALID_SHIFT", Message: "Invalid shift"}
	InvalidSection   = Definition{Code: "INVALID_SECTION", Message: "Invalid section"}
	InvalidDate      = Definition{Code: "INVALID_DATE", Message: "Invalid date"}
	AnimalNotFound   = Definition{Code: "ANIMAL_NOT_FOUND", Message: "Animal not found"}
	AnimalNotInRound = Definition{Code: "ANIMAL_NOT_IN_ROUND", Message: "Animal not part of this round"}
)

// 巡查流程错误。
var (
	RoundReadOnly      = Definition{Code: "ROUND_READ_ONLY", Message: "Round already signed off, read-only"}
	RoundAlreadySigned = Definition{Code: "ROUND_ALREADY_SIGNED", Message: "Round already signed off for this scope"}
	RoundIncomplete    = Definition{Code: "ROUND_INCOMPLETE", Message: "Round checks incomplete"}
	RoundNotOpen       = Definition{Code: "ROUND_NOT_OPEN", Message: "Round session not opened for this scope"}
	SignatureRequired  = Definition{Code: "SIGNATURE_REQUIRED", Message: "Signing initials required"}
	NoteRequired       = Definition{Code: "NOTE_REQUIRED", Message: "General notes required for skipped water checks"}
	ToggleDisabled     = Definition{Code: "TOGGLE_DISABLED", Message: "Toggle disabled for flagged animal"}
	InvalidToggleKind  = Definition{Code: "INVALID_TOGGLE_KIND", Message: "Unknown toggle kind"}
)

// 异常上报流程错误。
var (
	IssueNoteRequired  = Definition{Code: "ISSUE_NOTE_REQUIRED", Message: "Issue description required"}
	IssueFlowActive    = Definition{Code: "ISSUE_FLOW_ACTIVE", Message: "Another issue report is in progress"}
	IssueFlowNotActive = Definition{Code: "ISSUE_FLOW_NOT_ACTIVE", Message: "No issue report in progress"}
	IssueFlowMismatch  = Definition{Code: "ISSUE_FLOW_MISMATCH", Message: "Issue report does not match the pending prompt"}
)

// 事件记录错误。
var (
	IncidentNotFound        = Definition{Code: "INCIDENT_NOT_FOUND", Message: "Incident not found"}
	InvalidStatusTransition = Definition{Code: "INVALID_STATUS_TRANSITION", Message: "Invalid incident status transition"}
)

// 通用错误。
var (
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, try again later"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	BadgeInvalid.Code:            BadgeInvalid,
	Unauthorized.Code:            Unauthorized,
	InvalidUserID.Code:           InvalidUserID,
	StaffNotFound.Code:           StaffNotFound,
	StaffDeactivated.Code:        StaffDeactivated,
	InvalidShift.Code:            InvalidShift,
	InvalidSection.Code:          InvalidSection,
	InvalidDate.Code:             InvalidDate,
	AnimalNotFound.Code:          AnimalNotFound,
	AnimalNotInRound.Code:        AnimalNotInRound,
	RoundReadOnly.Code:           RoundReadOnly,
	RoundAlreadySigned.Code:      RoundAlreadySigned,
	RoundIncomplete.Code:         RoundIncomplete,
	RoundNotOpen.Code:            RoundNotOpen,
	InvalidToggleKind.Code:       InvalidToggleKind,
	SignatureRequired.Code:       SignatureRequired,
	NoteRequired.Code:            NoteRequired,
	ToggleDisabled.Code:          ToggleDisabled,
	IssueNoteRequired.Code:       IssueNoteRequired,
	IssueFlowActive.Code:         IssueFlowActive,
	IssueFlowNotActive.Code:      IssueFlowNotActive,
	IssueFlowMismatch.Code:       IssueFlowMismatch,
	IncidentNotFound.Code:        IncidentNotFound,
	InvalidStatusTransition.Code: InvalidStatusTransition,
	TooManyRequests.Code:         TooManyRequests,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
