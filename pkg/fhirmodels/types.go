package fhirmodels

// Common FHIR value set constants used across the converters.

// Terminology system URLs.
const (
	SystemSNOMED             = "http://snomed.info/sct"
	SystemLOINC              = "http://loinc.org"
	SystemRxNorm             = "http://www.nlm.nih.gov/research/umls/rxnorm"
	SystemCVX                = "http://hl7.org/fhir/sid/cvx"
	SystemDICOM              = "http://dicom.nema.org/resources/ontology/DCM"
	SystemUCUM               = "http://unitsofmeasure.org"
	SystemURNIETF            = "urn:ietf:rfc:3986"
	SystemActCode            = "http://terminology.hl7.org/CodeSystem/v3-ActCode"
	SystemMaritalStatus      = "http://terminology.hl7.org/CodeSystem/v3-MaritalStatus"
	SystemIdentifierType     = "http://terminology.hl7.org/CodeSystem/v2-0203"
	SystemClaimType          = "http://terminology.hl7.org/CodeSystem/claim-type"
	SystemProcessPriority    = "http://terminology.hl7.org/CodeSystem/processpriority"
	SystemAdjudication       = "http://terminology.hl7.org/CodeSystem/adjudication"
	SystemOrganizationType   = "http://terminology.hl7.org/CodeSystem/organization-type"
	SystemSubscriberRel      = "http://terminology.hl7.org/CodeSystem/subscriber-relationship"
	SystemObsCategory        = "http://terminology.hl7.org/CodeSystem/observation-category"
	SystemConditionClinical  = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	SystemConditionVerStatus = "http://terminology.hl7.org/CodeSystem/condition-ver-status"
	SystemConditionCategory  = "http://terminology.hl7.org/CodeSystem/condition-category"
	SystemAllergyClinical    = "http://terminology.hl7.org/CodeSystem/allergyintolerance-clinical"
	SystemAllergyVerStatus   = "http://terminology.hl7.org/CodeSystem/allergyintolerance-verification"
	SystemAllergyType        = "http://hl7.org/fhir/allergy-intolerance-type"
)

// Synthea-specific code systems and identifier namespaces.
const (
	SystemClaimEvent        = "http://synthea.tools/CodeSystem/claim-event"
	SystemTransactionType   = "http://synthea.tools/CodeSystem/claims-transaction-type"
	SystemPaymentMethod     = "http://synthea.tools/CodeSystem/payment-method"
	IdentifierSystemClaim   = "urn:synthea:claim"
	IdentifierSystemImaging = "urn:synthea:imaging_studies"
	IdentifierSystemMRN     = "urn:oid:2.16.840.1.113883.19.5"
)

// Extension URLs.
const (
	ExtGeolocation       = "http://hl7.org/fhir/StructureDefinition/geolocation"
	ExtBirthPlace        = "http://hl7.org/fhir/StructureDefinition/birthPlace"
	ExtUSCoreRace        = "http://hl7.org/fhir/us/core/StructureDefinition/us-core-race"
	ExtUSCoreEthnicity   = "http://hl7.org/fhir/us/core/StructureDefinition/us-core-ethnicity"
	ExtResourceEncounter = "http://hl7.org/fhir/StructureDefinition/resource-encounter"
	ExtResourcePatient   = "http://hl7.org/fhir/StructureDefinition/resource-patient"

	ExtEncounterPayer         = "http://example.org/fhir/StructureDefinition/encounter-payer"
	ExtEncounterBaseCost      = "http://example.org/fhir/StructureDefinition/encounter-baseCost"
	ExtEncounterTotalCost     = "http://example.org/fhir/StructureDefinition/encounter-totalClaimCost"
	ExtEncounterPayerCoverage = "http://example.org/fhir/StructureDefinition/encounter-payerCoverage"
	ExtProcedureBaseCost      = "http://example.org/fhir/StructureDefinition/baseCost"

	ExtMedicationBaseCost      = "http://synthea.org/fhir/StructureDefinition/medication-baseCost"
	ExtMedicationPayerCoverage = "http://synthea.org/fhir/StructureDefinition/medication-payerCoverage"
	ExtMedicationTotalCost     = "http://synthea.org/fhir/StructureDefinition/medication-totalCost"

	ExtDepartmentID        = "http://synthea.tools/StructureDefinition/department-id"
	ExtPatientDepartmentID = "http://synthea.tools/StructureDefinition/patient-department-id"
	ExtTransactionID       = "http://synthea.tools/StructureDefinition/transaction-id"
	ExtDeviceUsePeriod     = "http://synthea.tools/fhir/StructureDefinition/device-use-period"

	ExtOrganizationStats = "http://synthea.mitre.org/fhir/StructureDefinition/organization-stats"
	ExtPayerStats        = "http://synthea.mitre.org/fhir/StructureDefinition/payer-stats"
	ExtSecondaryPayer    = "http://synthea.mitre.org/fhir/StructureDefinition/secondary-payer"
	ExtOwnerName         = "http://synthea.mitre.org/fhir/StructureDefinition/owner-name"
	ExtImmunizationCost  = "http://synthea.mitre.org/fhir/StructureDefinition/immunization-cost"
)

// EncounterClass codes per FHIR R4 v3-ActCode.
const (
	EncounterClassAmbulatory = "AMB"
	EncounterClassEmergency  = "EMER"
	EncounterClassInpatient  = "IMP"
	EncounterClassAcute      = "ACUTE"
)

// AdministrativeGender codes.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// ObservationCategory codes.
const (
	ObsCategoryVitalSigns    = "vital-signs"
	ObsCategoryLaboratory    = "laboratory"
	ObsCategoryImaging       = "imaging"
	ObsCategorySocialHistory = "social-history"
	ObsCategorySurvey        = "survey"
	ObsCategoryProcedure     = "procedure"
)

// ClinicalStatus codes shared by Condition and AllergyIntolerance.
const (
	ClinicalActive   = "active"
	ClinicalInactive = "inactive"
	ClinicalResolved = "resolved"
)

// Claim transaction types carried in adjudication categories.
const (
	TransactionCharge      = "CHARGE"
	TransactionPayment     = "PAYMENT"
	TransactionAdjustment  = "ADJUSTMENT"
	TransactionTransferIn  = "TRANSFERIN"
	TransactionTransferOut = "TRANSFEROUT"
)
