package models

import (
	"time"

	"github.com/google/uuid"
)

// Geography reference hierarchy: Region -> RegionalUnit -> Municipality.
// Read-only during normal operation; mutated only by curation and the
// bulk loader.
type Region struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	SortOrder int       `json:"sort_order"`
}

type RegionalUnit struct {
	ID        uuid.UUID `json:"id"`
	RegionID  uuid.UUID `json:"region_id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
}

type Municipality struct {
	ID             uuid.UUID `json:"id"`
	RegionalUnitID uuid.UUID `json:"regional_unit_id"`
	Name           string    `json:"name"`
	SortOrder      int       `json:"sort_order"`
}

// ICD-10 reference hierarchy used to code neoplasm diagnoses.
type ICD10Category struct {
	ID              uuid.UUID `json:"id"`
	CodeRange       string    `json:"code_range"` // e.g. "C00-C97"
	Name            string    `json:"name"`
	NameEN          string    `json:"name_en,omitempty"`
	Description     string    `json:"description,omitempty"`
	IsCancerRelated bool      `json:"is_cancer_related"`
	SortOrder       int       `json:"sort_order"`
}

type ICD10Subcategory struct {
	ID             uuid.UUID `json:"id"`
	CategoryID     uuid.UUID `json:"category_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	CodeRangeStart string    `json:"code_range_start,omitempty"`
	CodeRangeEnd   string    `json:"code_range_end,omitempty"`
	SortOrder      int       `json:"sort_order"`
}

type ICD10Code struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Label         string     `json:"label"`
	CategoryID    uuid.UUID  `json:"category_id"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsCommon      bool       `json:"is_common"`
	Notes         string     `json:"notes,omitempty"`
}

// Lookup is the shared shape of every named reference entity: ordered by
// an explicit sort_order, optionally flagged inactive.
type Lookup struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NameEN    string    `json:"name_en,omitempty"`
	Code      string    `json:"code,omitempty"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
}

// RequestStatus defines workflow states through flags rather than a fixed
// enum; curation can add statuses without code changes.
type RequestStatus struct {
	Lookup
	IsClosed       bool   `json:"is_closed"`
	IsPending      bool   `json:"is_pending"`
	RequiresAction bool   `json:"requires_action"`
	ColorCode      string `json:"color_code,omitempty"`
}

type RequestCategory struct {
	Lookup
	Description string `json:"description,omitempty"`
}

type RequestType struct {
	Lookup
	CategoryID            *uuid.UUID `json:"category_id,omitempty"`
	Description           string     `json:"description,omitempty"`
	RequiresDocuments     bool       `json:"requires_documents"`
	EstimatedDurationDays *int       `json:"estimated_duration_days,omitempty"`
	IsUrgent              bool       `json:"is_urgent"`
	PriorityLevel         int        `json:"priority_level"`
}

// Tag categories used both on RequestTag and as Request.primary_category.
const (
	TagCategoryKepa           = "kepa"
	TagCategoryBenefits       = "benefits"
	TagCategoryDisability     = "disability"
	TagCategoryWork           = "work"
	TagCategoryEducation      = "education"
	TagCategoryMedical        = "medical"
	TagCategoryPsychosocial   = "psychosocial"
	TagCategoryTransport      = "transport"
	TagCategoryAccommodation  = "accommodation"
	TagCategoryFinancial      = "financial"
	TagCategoryAdministrative = "administrative"
)

// TagCategories lists every recognised tag category in display order.
var TagCategories = []string{
	TagCategoryKepa,
	TagCategoryBenefits,
	TagCategoryDisability,
	TagCategoryWork,
	TagCategoryEducation,
	TagCategoryMedical,
	TagCategoryPsychosocial,
	TagCategoryTransport,
	TagCategoryAccommodation,
	TagCategoryFinancial,
	TagCategoryAdministrative,
}

func ValidTagCategory(category string) bool {
	for _, c := range TagCategories {
		if c == category {
			return true
		}
	}
	return false
}

type RequestTag struct {
	ID                      uuid.UUID `json:"id"`
	Name                    string    `json:"name"`
	Category                string    `json:"category"`
	Description             string    `json:"description,omitempty"`
	IsActive                bool      `json:"is_active"`
	EstimatedDurationDays   *int      `json:"estimated_duration_days,omitempty"`
	RequiresDocuments       bool      `json:"requires_documents"`
	RequiresExternalContact bool      `json:"requires_external_contact"`
}

type InsuranceProvider struct {
	Lookup
	ProviderType string `json:"provider_type,omitempty"` // public, private, special
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Website      string `json:"website,omitempty"`
}

type EmploymentStatus struct {
	Lookup
	AffectsInsurance bool `json:"affects_insurance"`
	IsUnemployed     bool `json:"is_unemployed"`
	IsRetired        bool `json:"is_retired"`
}

type TherapyTypeLookup struct {
	Lookup
	TherapyCategory         string `json:"therapy_category,omitempty"` // systemic, local, surgical, supportive, palliative
	RequiresHospitalization bool   `json:"requires_hospitalization"`
	TypicalDurationWeeks    *int   `json:"typical_duration_weeks,omitempty"`
}

type Hospital struct {
	Lookup
	HospitalType    string     `json:"hospital_type,omitempty"` // public, private, university
	MunicipalityID  *uuid.UUID `json:"municipality_id,omitempty"`
	Address         string     `json:"address,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Website         string     `json:"website,omitempty"`
	HasOncology     bool       `json:"has_oncology"`
	HasRadiotherapy bool       `json:"has_radiotherapy"`
	HasChemotherapy bool       `json:"has_chemotherapy"`
	HasSurgery      bool       `json:"has_surgery"`
}

// Person enumerations.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	MaritalSingle     = "single"
	MaritalMarried    = "married"
	MaritalCohabiting = "cohabiting"
	MaritalDivorced   = "divorced"
	MaritalWidowed    = "widowed"
)

const (
	InsuranceInsured   = "insured"
	InsuranceUninsured = "uninsured"
	InsuranceIndirect  = "indirectlyinsured"
)

// Person is the beneficiary aggregate root. Every medical record,
// request, contact and document hangs off a Person and is removed with
// it.
type Person struct {
	ID uuid.UUID `json:"id"`

	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	FatherName string `json:"father_name,omitempty"`
	MotherName string `json:"mother_name,omitempty"`

	BirthYear     *int   `json:"birth_year,omitempty"`
	Gender        string `json:"gender,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`

	ChildrenCount     int `json:"children_count"`
	Minors            int `json:"minors"`
	Students          int `json:"students"`
	NoMilitaryService int `json:"no_military_service"`

	Nationality string `json:"nationality,omitempty"`
	Citizenship string `json:"citizenship,omitempty"`

	VAT    string `json:"vat,omitempty"`
	AMKA   string `json:"amka,omitempty"`
	IDCard string `json:"id_card,omitempty"`

	Landline string `json:"landline,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Email    string `json:"email,omitempty"`

	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	PostalCode     string     `json:"postal_code,omitempty"`
	MunicipalityID *uuid.UUID `json:"municipality_id,omitempty"`
	RegionalUnitID *uuid.UUID `json:"regional_unit_id,omitempty"`
	RegionID       *uuid.UUID `json:"region_id,omitempty"`

	WeightKg *float64 `json:"weight_kg,omitempty"`
	HeightM  *float64 `json:"height_m,omitempty"`

	CenterID           *uuid.UUID `json:"center_id,omitempty"`
	RegistrationNumber int        `json:"registration_number,omitempty"`
	KnowledgeSource    string     `json:"knowledge_source,omitempty"`

	InsuranceStatus     string     `json:"insurance_status,omitempty"`
	InsuranceProviderID *uuid.UUID `json:"insurance_provider_id,omitempty"`
	SpecialFunds        string     `json:"special_funds,omitempty"`
	WidowPension        bool       `json:"widow_pension"`
	DisabilityPension   bool       `json:"disability_pension"`

	EmploymentStatusID           *uuid.UUID `json:"employment_status_id,omitempty"`
	UnemploymentCard             bool       `json:"unemployment_card"`
	UnemploymentRegistrationDate *time.Time `json:"unemployment_registration_date,omitempty"`
	Profession                   string     `json:"profession,omitempty"`
	Specialization               string     `json:"specialization,omitempty"`
	EmploymentType               string     `json:"employment_type,omitempty"` // employee, freelancer, owner
	EmployerName                 string     `json:"employer_name,omitempty"`
	EmployerLegalForm            string     `json:"employer_legal_form,omitempty"`
	HireDate                     *time.Time `json:"hire_date,omitempty"`
	WorkSchedule                 string     `json:"work_schedule,omitempty"` // full_time, part_time, hourly, seasonal
	ContractType                 string     `json:"contract_type,omitempty"` // indefinite, fixed_term, project, other

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BMI returns weight / height^2 rounded to one decimal, or nil when
// either measurement is missing.
func (p Person) BMI() *float64 {
	if p.WeightKg == nil || p.HeightM == nil || *p.HeightM == 0 {
		return nil
	}
	bmi := *p.WeightKg / (*p.HeightM * *p.HeightM)
	rounded := float64(int(bmi*10+0.5)) / 10
	return &rounded
}

// BMI category buckets at the 18.5 / 25 / 30 / 35 / 40 thresholds.
const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese1      = "obese_class_1"
	BMIObese2      = "obese_class_2"
	BMIObese3      = "obese_class_3"
)

func (p Person) BMICategory() string {
	bmi := p.BMI()
	if bmi == nil {
		return ""
	}
	switch {
	case *bmi < 18.5:
		return BMIUnderweight
	case *bmi < 25:
		return BMINormal
	case *bmi < 30:
		return BMIOverweight
	case *bmi < 35:
		return BMIObese1
	case *bmi < 40:
		return BMIObese2
	default:
		return BMIObese3
	}
}

// Age derives from the birth year against the supplied "today".
func (p Person) Age(today time.Time) *int {
	if p.BirthYear == nil {
		return nil
	}
	age := today.Year() - *p.BirthYear
	return &age
}

// ContactPerson relations.
const (
	RelationParent    = "parent"
	RelationGuardian  = "guardian"
	RelationSibling   = "sibling"
	RelationFriend    = "friend"
	RelationSpouse    = "spouse"
	RelationChild     = "child"
	RelationRelative  = "relative"
	RelationCaregiver = "caregiver"
	RelationOther     = "other"
)

// ContactPerson is a third party reachable on behalf of a beneficiary.
// At most one per Person carries IsPrimary.
type ContactPerson struct {
	ID       uuid.UUID `json:"id"`
	PersonID uuid.UUID `json:"person_id"`

	LastName  string `json:"last_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	Relation  string `json:"relation,omitempty"`

	Landline string `json:"landline,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Email    string `json:"email,omitempty"`

	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	PostalCode     string     `json:"postal_code,omitempty"`
	MunicipalityID *uuid.UUID `json:"municipality_id,omitempty"`

	IsPrimary bool   `json:"is_primary"`
	Notes     string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MedicalHistory is one-to-one with Person.
type MedicalHistory struct {
	ID       uuid.UUID `json:"id"`
	PersonID uuid.UUID `json:"person_id"`

	Disability           bool `json:"disability"`
	CertifiedDisability  bool `json:"certified_disability"`
	DisabilityPercentage *int `json:"disability_percentage,omitempty"`

	KepaCheck  bool       `json:"kepa_check"`
	KepaExpiry *time.Time `json:"kepa_expiry,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Neoplasm struct {
	ID       uuid.UUID `json:"id"`
	PersonID uuid.UUID `json:"person_id"`

	ICD10CategoryID    *uuid.UUID `json:"icd10_category_id,omitempty"`
	ICD10SubcategoryID *uuid.UUID `json:"icd10_subcategory_id,omitempty"`
	ICD10CodeID        uuid.UUID  `json:"icd10_code_id"`

	Localization       string `json:"localization,omitempty"`
	Metastasis         bool   `json:"metastasis"`
	Surgery            bool   `json:"surgery"`
	SurgeryHospital    string `json:"surgery_hospital,omitempty"`
	ScheduledTreatment string `json:"scheduled_treatment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Therapy classifications.
const (
	TherapyChemotherapy  = "chemotherapy"
	TherapyRadiotherapy  = "radiotherapy"
	TherapyHormone       = "hormone_therapy"
	TherapyTargeted      = "targeted_therapy"
	TherapyImmunotherapy = "immunotherapy"
	TherapyGene          = "gene_therapy"
	TherapyAlternative   = "alternative"
	TherapyStemCell      = "stem_cell"
	TherapyOther         = "other"
)

type Therapy struct {
	ID           uuid.UUID  `json:"id"`
	NeoplasmID   uuid.UUID  `json:"neoplasm_id"`
	TherapyType  string     `json:"therapy_type"`
	HospitalName string     `json:"hospital_name,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comorbidity is one-to-one with Person; BMI, weight and height are read
// through the owning Person rather than duplicated here.
type Comorbidity struct {
	ID       uuid.UUID `json:"id"`
	PersonID uuid.UUID `json:"person_id"`

	ArterialDisease       bool `json:"arterial_disease"`
	CardiovascularDisease bool `json:"cardiovascular_disease"`
	COPD                  bool `json:"copd"`
	Diabetes              bool `json:"diabetes"`
	PsychiatricDisorder   bool `json:"psychiatric_disorder"`
	MobilityIssues        bool `json:"mobility_issues"`
	Nephropathy           bool `json:"nephropathy"`

	OtherConditions string `json:"other_conditions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Request enumerations.
const (
	CommunicationForm       = "form"
	CommunicationPhone      = "phone"
	CommunicationMobileUnit = "mobile_unit"
)

const (
	ContactedByBeneficiary = "beneficiary"
	ContactedByCaregiver   = "caregiver"
	ContactedByReferral    = "referral"
)

const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Request is a beneficiary's service request, classified by tags and a
// flag-driven status.
type Request struct {
	ID       uuid.UUID  `json:"id"`
	PersonID uuid.UUID  `json:"person_id"`
	CenterID *uuid.UUID `json:"center_id,omitempty"`

	StatusID        uuid.UUID    `json:"status_id"`
	CategoryID      *uuid.UUID   `json:"category_id,omitempty"`
	PrimaryCategory string       `json:"primary_category,omitempty"`
	Tags            []RequestTag `json:"tags,omitempty"`

	CommunicationMethod string `json:"communication_method,omitempty"`
	ContactPersonType   string `json:"contact_person_type,omitempty"`

	SubmissionDate *time.Time `json:"submission_date,omitempty"`
	UpdateDate     *time.Time `json:"update_date,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	ClosedDate     *time.Time `json:"closed_date,omitempty"`

	Subject        string     `json:"subject,omitempty"`
	Priority       int        `json:"priority"`
	IsAccepted     bool       `json:"is_accepted"`
	ProtocolNumber string     `json:"protocol_number,omitempty"`
	AssignedTo     *uuid.UUID `json:"assigned_to,omitempty"`
	Outcome        string     `json:"outcome,omitempty"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty"`

	NumberOfActions int `json:"number_of_actions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DaysOpen counts from creation to the closed date, or to today while
// the request is still open.
func (r Request) DaysOpen(today time.Time) int {
	end := today
	if r.ClosedDate != nil {
		end = *r.ClosedDate
	}
	return int(end.Sub(dateOf(r.CreatedAt)).Hours() / 24)
}

// IsOverdue reports whether the due date has passed while the request is
// not in a closed status.
func (r Request) IsOverdue(today time.Time, status RequestStatus) bool {
	if r.DueDate == nil || status.IsClosed {
		return false
	}
	return today.After(*r.DueDate)
}

// EstimatedDurationDays is the longest estimate among the attached tags.
func (r Request) EstimatedDurationDays() *int {
	var max *int
	for _, tag := range r.Tags {
		if tag.EstimatedDurationDays == nil {
			continue
		}
		if max == nil || *tag.EstimatedDurationDays > *max {
			max = tag.EstimatedDurationDays
		}
	}
	return max
}

// RequiredDocumentTags projects the tags that demand documents.
func (r Request) RequiredDocumentTags() []RequestTag {
	var out []RequestTag
	for _, tag := range r.Tags {
		if tag.RequiresDocuments {
			out = append(out, tag)
		}
	}
	return out
}

// RequiresExternalContact reports whether any attached tag does.
func (r Request) RequiresExternalContact() bool {
	for _, tag := range r.Tags {
		if tag.RequiresExternalContact {
			return true
		}
	}
	return false
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Action enumerations.
const (
	ActionCall     = "call"
	ActionEmail    = "email"
	ActionReferral = "referral"
)

const (
	DirectionFrom = "from"
	DirectionTo   = "to"
)

const (
	ContactPatient      = "patient"
	ContactCaregiver    = "caregiver"
	ContactOrganization = "organization"
)

const (
	ReferralExternalOrg  = "external_org"
	ReferralInternalDept = "internal_dept"
	ReferralSpecialist   = "specialist"
)

// Action is a logged communication or referral performed in service of a
// Request. Creating one increments the request's action counter in the
// same transaction.
type Action struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	PersonID  uuid.UUID `json:"person_id"`

	ActionType   string `json:"action_type"`
	Direction    string `json:"direction,omitempty"`
	ContactType  string `json:"contact_type,omitempty"`
	ReferralType string `json:"referral_type,omitempty"`

	ActionDate    time.Time  `json:"action_date"`
	ExternalOrgID *uuid.UUID `json:"external_org_id,omitempty"`
	ContactID     *uuid.UUID `json:"contact_id,omitempty"`

	ManualOrgName         string `json:"manual_org_name,omitempty"`
	ManualContactName     string `json:"manual_contact_name,omitempty"`
	ManualContactPosition string `json:"manual_contact_position,omitempty"`
	ManualContactPhone    string `json:"manual_contact_phone,omitempty"`
	ManualContactEmail    string `json:"manual_contact_email,omitempty"`

	Result string `json:"result,omitempty"`
	Notes  string `json:"notes,omitempty"`

	RequiresFollowUp bool       `json:"requires_follow_up"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty"`
	IsCompleted      bool       `json:"is_completed"`

	PerformedBy *uuid.UUID `json:"performed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Directory entities.
type Center struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Code           string     `json:"code,omitempty"`
	Address        string     `json:"address,omitempty"`
	MunicipalityID *uuid.UUID `json:"municipality_id,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const (
	OrgTypeHospital      = "hospital"
	OrgTypeMunicipality  = "municipality"
	OrgTypeSocialService = "social_service"
	OrgTypeInsurance     = "insurance"
	OrgTypeMinistry      = "ministry"
	OrgTypeKEP           = "kep"
	OrgTypeOther         = "other"
)

type ExternalOrganization struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	OrgType        string     `json:"org_type,omitempty"`
	Address        string     `json:"address,omitempty"`
	MunicipalityID *uuid.UUID `json:"municipality_id,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	Website        string     `json:"website,omitempty"`
	IsActive       bool       `json:"is_active"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Contact is a named person inside an external organization.
type Contact struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Position       string    `json:"position,omitempty"`
	Department     string    `json:"department,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Mobile         string    `json:"mobile,omitempty"`
	Email          string    `json:"email,omitempty"`
	IsPrimary      bool      `json:"is_primary"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Document metadata. Binary content lives in external file storage; the
// core records what storage reported.
type DocumentType struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description,omitempty"`
	IsRequiredForRequests bool      `json:"is_required_for_requests"`
}

type Document struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description,omitempty"`
	DocumentTypeID *uuid.UUID `json:"document_type_id,omitempty"`

	PersonID  *uuid.UUID `json:"person_id,omitempty"`
	RequestID *uuid.UUID `json:"request_id,omitempty"`

	StoragePath      string `json:"storage_path,omitempty"`
	OriginalFilename string `json:"original_filename,omitempty"`
	FileSize         *int64 `json:"file_size,omitempty"`

	UploadedBy *uuid.UUID `json:"uploaded_by,omitempty"`

	IsVerified bool       `json:"is_verified"`
	VerifiedBy *uuid.UUID `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RequestAttachment struct {
	ID               uuid.UUID  `json:"id"`
	RequestID        uuid.UUID  `json:"request_id"`
	StoragePath      string     `json:"storage_path,omitempty"`
	OriginalFilename string     `json:"original_filename,omitempty"`
	FileSize         *int64     `json:"file_size,omitempty"`
	Description      string     `json:"description,omitempty"`
	UploadedBy       *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ActionAttachment struct {
	ID               uuid.UUID `json:"id"`
	ActionID         uuid.UUID `json:"action_id"`
	StoragePath      string    `json:"storage_path,omitempty"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	FileSize         *int64    `json:"file_size,omitempty"`
	Description      string    `json:"description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// StoredFile is what the external file-storage layer reports back after
// an upload; attachment metadata is populated from it when absent.
type StoredFile struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// User is a staff member. Identity is opaque to the case-management
// core: aggregates reference users only by ID.
type User struct {
	ID        uuid.UUID  `json:"id"`
	CenterID  *uuid.UUID `json:"center_id,omitempty"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// WorkloadStats is the read-only dashboard projection.
type WorkloadStats struct {
	OpenRequests    int64            `json:"open_requests"`
	OverdueRequests int64            `json:"overdue_requests"`
	PendingRequests int64            `json:"pending_requests"`
	ByCategory      map[string]int64 `json:"by_category"`
	ActionsLast30d  int64            `json:"actions_last_30d"`
}
