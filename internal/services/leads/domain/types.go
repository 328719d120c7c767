// Package domain holds the lead cache types shared across the leads vertical
package domain

import "time"

// Lead is one wide row of the leads_cache table, tracker metadata plus the
// fields mined from the intake narrative
// pointer fields are nullable columns, nil means absent
type Lead struct {
	TaskID     string  `json:"task_id"`
	MyCaseID   *string `json:"id_mycase"`
	MyCaseLink *string `json:"mycase_link"`

	TaskName  *string `json:"task_name"`
	Status    *string `json:"status"`
	Priority  *string `json:"priority"`
	CreatedBy *string `json:"created_by"`
	Assignee  *string `json:"assignee"`

	DateCreated *time.Time `json:"date_created"`
	DateUpdated *time.Time `json:"date_updated"`
	DueDate     *time.Time `json:"due_date"`

	PipelineViability   *string    `json:"pipeline_de_viabilidad"`
	OriginalConsultDate *time.Time `json:"fecha_consulta_original"`
	TISOpen             *bool      `json:"tis_open"`

	DisplayName *string `json:"nombre_clickup"`
	SearchKey   *string `json:"nombre_normalizado"`

	FullNameExtracted *string `json:"full_name_extracted"`
	PhoneRaw          *string `json:"phone_raw"`
	PhoneNumber       *string `json:"phone_number"`
	EmailExtracted    *string `json:"email_extracted"`
	Location          *string `json:"location"`

	Interviewee     *string `json:"interviewee"`
	InterviewType   *string `json:"interview_type"`
	InterviewResult *string `json:"interview_result"`
	InterviewOther  *string `json:"interview_other"`

	CaseType       *string `json:"case_type"`
	AccidentLast2y *string `json:"accident_last_2y"`
	VideoCall      *string `json:"video_call"`

	RecordCriminal   *string `json:"record_criminal"`
	JointResidences  *string `json:"joint_residences"`
	EOIRPending      *string `json:"eoir_pending"`
	TVisaMinWage     *string `json:"tvisa_min_wage"`
	ReferralFullName *string `json:"referral_full_name"`
	ReferralPhone    *string `json:"referral_phone_number"`

	TaskContent  *string `json:"task_content"`
	CommentCount *int    `json:"comment_count"`

	SyncedAt time.Time `json:"synced_at"`
}

// SearchHit is a lead with its trigram similarity score against the query
type SearchHit struct {
	Lead       Lead    `json:"lead"`
	Similarity float64 `json:"similarity"`
}

// SearchInput filters the fuzzy name search
type SearchInput struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

// RecentInput filters the recent updates listing
type RecentInput struct {
	Since time.Time `json:"since"`
	Limit int       `json:"limit"`
}
