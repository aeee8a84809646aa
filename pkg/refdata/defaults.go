package refdata

import "github.com/inab-certh/K3-ticket-management-system/pkg/common/models"

func intPtr(n int) *int { return &n }

// DefaultCatalog is the seed set shipped with the service. A YAML
// catalog on disk replaces it wholesale.
func DefaultCatalog() Catalog {
	return Catalog{
		RequestStatuses: []catalogStatus{
			{Name: "Νέο", NameEN: "New", IsPending: true, RequiresAction: true, ColorCode: "#2196F3"},
			{Name: "Σε εξέλιξη", NameEN: "In progress", RequiresAction: true, ColorCode: "#FF9800"},
			{Name: "Σε αναμονή", NameEN: "On hold", IsPending: true, ColorCode: "#9E9E9E"},
			{Name: "Ολοκληρωμένο", NameEN: "Completed", IsClosed: true, ColorCode: "#4CAF50"},
			{Name: "Ακυρωμένο", NameEN: "Cancelled", IsClosed: true, ColorCode: "#F44336"},
		},
		RequestCategories: []catalogCategory{
			{Name: "Κοινωνική υποστήριξη", NameEN: "Social support"},
			{Name: "Διοικητικά", NameEN: "Administrative"},
			{Name: "Ιατρικά", NameEN: "Medical"},
			{Name: "Οικονομικά", NameEN: "Financial"},
		},
		RequestTypes: []catalogType{
			{Name: "Πιστοποίηση αναπηρίας ΚΕΠΑ", NameEN: "KEPA disability certification", RequiresDocuments: true, EstimatedDurationDays: intPtr(90), PriorityLevel: 2},
			{Name: "Επίδομα", NameEN: "Benefit application", RequiresDocuments: true, EstimatedDurationDays: intPtr(60), PriorityLevel: 2},
			{Name: "Ενημέρωση δικαιωμάτων", NameEN: "Rights information", EstimatedDurationDays: intPtr(7), PriorityLevel: 3},
			{Name: "Επείγουσα παραπομπή", NameEN: "Urgent referral", IsUrgent: true, EstimatedDurationDays: intPtr(3), PriorityLevel: 1},
		},
		RequestTags: []catalogTag{
			{Name: "Αίτηση ΚΕΠΑ", Category: models.TagCategoryKepa, RequiresDocuments: true, EstimatedDurationDays: intPtr(90)},
			{Name: "Ανανέωση ΚΕΠΑ", Category: models.TagCategoryKepa, RequiresDocuments: true, EstimatedDurationDays: intPtr(60)},
			{Name: "Επίδομα αναπηρίας", Category: models.TagCategoryBenefits, RequiresDocuments: true, RequiresExternalContact: true, EstimatedDurationDays: intPtr(45)},
			{Name: "Κάρτα αναπηρίας", Category: models.TagCategoryDisability, RequiresDocuments: true, EstimatedDurationDays: intPtr(30)},
			{Name: "Εργασιακά δικαιώματα", Category: models.TagCategoryWork, EstimatedDurationDays: intPtr(14)},
			{Name: "Εκπαιδευτική υποστήριξη", Category: models.TagCategoryEducation, EstimatedDurationDays: intPtr(21)},
			{Name: "Ασφαλιστική ικανότητα", Category: models.TagCategoryFinancial, RequiresExternalContact: true, EstimatedDurationDays: intPtr(10)},
			{Name: "Ψυχοκοινωνική στήριξη", Category: models.TagCategoryPsychosocial, EstimatedDurationDays: intPtr(30)},
			{Name: "Διοικητικό αίτημα", Category: models.TagCategoryAdministrative, EstimatedDurationDays: intPtr(7)},
		},
		InsuranceProviders: []catalogProvider{
			{Name: "ΕΦΚΑ", NameEN: "EFKA", ProviderType: "public", Website: "https://www.efka.gov.gr"},
			{Name: "ΕΟΠΥΥ", NameEN: "EOPYY", ProviderType: "public", Website: "https://www.eopyy.gov.gr"},
			{Name: "Ιδιωτική ασφάλιση", NameEN: "Private insurance", ProviderType: "private"},
			{Name: "Ανασφάλιστος/η", NameEN: "Uninsured", ProviderType: "special"},
		},
		EmploymentStatuses: []catalogEmployment{
			{Name: "Εργαζόμενος/η", NameEN: "Employed", AffectsInsurance: true},
			{Name: "Άνεργος/η", NameEN: "Unemployed", AffectsInsurance: true, IsUnemployed: true},
			{Name: "Συνταξιούχος", NameEN: "Retired", IsRetired: true},
			{Name: "Οικιακά", NameEN: "Homemaker"},
			{Name: "Φοιτητής/τρια", NameEN: "Student"},
		},
		TherapyTypes: []catalogTherapy{
			{Name: "Χημειοθεραπεία", NameEN: "Chemotherapy", TherapyCategory: "systemic", RequiresHospitalization: true, TypicalDurationWeeks: intPtr(18)},
			{Name: "Ακτινοθεραπεία", NameEN: "Radiotherapy", TherapyCategory: "local", TypicalDurationWeeks: intPtr(6)},
			{Name: "Ανοσοθεραπεία", NameEN: "Immunotherapy", TherapyCategory: "systemic", TypicalDurationWeeks: intPtr(24)},
			{Name: "Ορμονοθεραπεία", NameEN: "Hormone therapy", TherapyCategory: "systemic", TypicalDurationWeeks: intPtr(52)},
			{Name: "Χειρουργική επέμβαση", NameEN: "Surgery", TherapyCategory: "surgical", RequiresHospitalization: true, TypicalDurationWeeks: intPtr(2)},
			{Name: "Παρηγορητική φροντίδα", NameEN: "Palliative care", TherapyCategory: "palliative"},
		},
		Hospitals: []catalogHospital{
			{Name: "ΓΝΑ Ο Ευαγγελισμός", HospitalType: "public", Address: "Υψηλάντου 45-47, Αθήνα", HasOncology: true, HasChemotherapy: true, HasSurgery: true},
			{Name: "ΓΝΘ Παπαγεωργίου", HospitalType: "public", Address: "Περιφερειακή οδός, Θεσσαλονίκη", HasOncology: true, HasRadiotherapy: true, HasChemotherapy: true, HasSurgery: true},
			{Name: "Θεαγένειο Αντικαρκινικό Νοσοκομείο", HospitalType: "public", Address: "Αλ. Συμεωνίδη 2, Θεσσαλονίκη", HasOncology: true, HasRadiotherapy: true, HasChemotherapy: true, HasSurgery: true},
			{Name: "ΠΓΝ Ηρακλείου", HospitalType: "university", Address: "Βούτες, Ηράκλειο", HasOncology: true, HasRadiotherapy: true, HasChemotherapy: true, HasSurgery: true},
		},
	}
}
