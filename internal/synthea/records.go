// Package synthea defines the flat record types of the tabular clinical
// dataset and their CSV schemas. Every field is a string holding the raw
// cell value; relationships are bare ids with no kind tag.
package synthea

// Patient is one row of patients.csv.
type Patient struct {
	ID                 string `csv:"Id"`
	BirthDate          string `csv:"BIRTHDATE"`
	DeathDate          string `csv:"DEATHDATE"`
	SSN                string `csv:"SSN"`
	Drivers            string `csv:"DRIVERS"`
	Passport           string `csv:"PASSPORT"`
	Prefix             string `csv:"PREFIX"`
	First              string `csv:"FIRST"`
	Last               string `csv:"LAST"`
	Suffix             string `csv:"SUFFIX"`
	Maiden             string `csv:"MAIDEN"`
	Marital            string `csv:"MARITAL"`
	Race               string `csv:"RACE"`
	Ethnicity          string `csv:"ETHNICITY"`
	Gender             string `csv:"GENDER"`
	BirthPlace         string `csv:"BIRTHPLACE"`
	Address            string `csv:"ADDRESS"`
	City               string `csv:"CITY"`
	State              string `csv:"STATE"`
	County             string `csv:"COUNTY"`
	Zip                string `csv:"ZIP"`
	Lat                string `csv:"LAT"`
	Lon                string `csv:"LON"`
	HealthcareExpenses string `csv:"HEALTHCARE_EXPENSES"`
	HealthcareCoverage string `csv:"HEALTHCARE_COVERAGE"`
}

// Encounter is one row of encounters.csv.
type Encounter struct {
	ID                string `csv:"Id"`
	Start             string `csv:"START"`
	Stop              string `csv:"STOP"`
	Patient           string `csv:"PATIENT"`
	Organization      string `csv:"ORGANIZATION"`
	Provider          string `csv:"PROVIDER"`
	Payer             string `csv:"PAYER"`
	EncounterClass    string `csv:"ENCOUNTERCLASS"`
	Code              string `csv:"CODE"`
	Description       string `csv:"DESCRIPTION"`
	BaseEncounterCost string `csv:"BASE_ENCOUNTER_COST"`
	TotalClaimCost    string `csv:"TOTAL_CLAIM_COST"`
	PayerCoverage     string `csv:"PAYER_COVERAGE"`
	ReasonCode        string `csv:"REASONCODE"`
	ReasonDescription string `csv:"REASONDESCRIPTION"`
}

// Condition is one row of conditions.csv.
type Condition struct {
	Start       string `csv:"START"`
	Stop        string `csv:"STOP"`
	Patient     string `csv:"PATIENT"`
	Encounter   string `csv:"ENCOUNTER"`
	Code        string `csv:"CODE"`
	Description string `csv:"DESCRIPTION"`
}

// Allergy is one row of allergies.csv. The flat schema has exactly two
// reaction slots.
type Allergy struct {
	Start        string `csv:"START"`
	Stop         string `csv:"STOP"`
	Patient      string `csv:"PATIENT"`
	Encounter    string `csv:"ENCOUNTER"`
	Code         string `csv:"CODE"`
	System       string `csv:"SYSTEM"`
	Description  string `csv:"DESCRIPTION"`
	Type         string `csv:"TYPE"`
	Category     string `csv:"CATEGORY"`
	Reaction1    string `csv:"REACTION1"`
	Description1 string `csv:"DESCRIPTION1"`
	Severity1    string `csv:"SEVERITY1"`
	Reaction2    string `csv:"REACTION2"`
	Description2 string `csv:"DESCRIPTION2"`
	Severity2    string `csv:"SEVERITY2"`
}

// Medication is one row of medications.csv.
type Medication struct {
	Start             string `csv:"START"`
	Stop              string `csv:"STOP"`
	Patient           string `csv:"PATIENT"`
	Payer             string `csv:"PAYER"`
	Encounter         string `csv:"ENCOUNTER"`
	Code              string `csv:"CODE"`
	Description       string `csv:"DESCRIPTION"`
	BaseCost          string `csv:"BASE_COST"`
	PayerCoverage     string `csv:"PAYER_COVERAGE"`
	Dispenses         string `csv:"DISPENSES"`
	TotalCost         string `csv:"TOTALCOST"`
	ReasonCode        string `csv:"REASONCODE"`
	ReasonDescription string `csv:"REASONDESCRIPTION"`
}

// Procedure is one row of procedures.csv.
type Procedure struct {
	Start             string `csv:"START"`
	Stop              string `csv:"STOP"`
	Patient           string `csv:"PATIENT"`
	Encounter         string `csv:"ENCOUNTER"`
	Code              string `csv:"CODE"`
	Description       string `csv:"DESCRIPTION"`
	BaseCost          string `csv:"BASE_COST"`
	ReasonCode        string `csv:"REASONCODE"`
	ReasonDescription string `csv:"REASONDESCRIPTION"`
}

// Observation is one row of observations.csv.
type Observation struct {
	Date        string `csv:"DATE"`
	Patient     string `csv:"PATIENT"`
	Encounter   string `csv:"ENCOUNTER"`
	Category    string `csv:"CATEGORY"`
	Code        string `csv:"CODE"`
	Description string `csv:"DESCRIPTION"`
	Value       string `csv:"VALUE"`
	Units       string `csv:"UNITS"`
	Type        string `csv:"TYPE"`
}

// Device is one row of devices.csv.
type Device struct {
	Start       string `csv:"START"`
	Stop        string `csv:"STOP"`
	Patient     string `csv:"PATIENT"`
	Encounter   string `csv:"ENCOUNTER"`
	Code        string `csv:"CODE"`
	Description string `csv:"DESCRIPTION"`
	UDI         string `csv:"UDI"`
}

// Organization is one row of organizations.csv.
type Organization struct {
	ID          string `csv:"Id"`
	Name        string `csv:"NAME"`
	Address     string `csv:"ADDRESS"`
	City        string `csv:"CITY"`
	State       string `csv:"STATE"`
	Zip         string `csv:"ZIP"`
	Lat         string `csv:"LAT"`
	Lon         string `csv:"LON"`
	Phone       string `csv:"PHONE"`
	Revenue     string `csv:"REVENUE"`
	Utilization string `csv:"UTILIZATION"`
}

// Payer is one row of payers.csv.
type Payer struct {
	ID                     string `csv:"Id"`
	Name                   string `csv:"NAME"`
	Ownership              string `csv:"OWNERSHIP"`
	Address                string `csv:"ADDRESS"`
	City                   string `csv:"CITY"`
	StateHeadquartered     string `csv:"STATE_HEADQUARTERED"`
	Zip                    string `csv:"ZIP"`
	Phone                  string `csv:"PHONE"`
	AmountCovered          string `csv:"AMOUNT_COVERED"`
	AmountUncovered        string `csv:"AMOUNT_UNCOVERED"`
	Revenue                string `csv:"REVENUE"`
	CoveredEncounters      string `csv:"COVERED_ENCOUNTERS"`
	UncoveredEncounters    string `csv:"UNCOVERED_ENCOUNTERS"`
	CoveredMedications     string `csv:"COVERED_MEDICATIONS"`
	UncoveredMedications   string `csv:"UNCOVERED_MEDICATIONS"`
	CoveredProcedures      string `csv:"COVERED_PROCEDURES"`
	UncoveredProcedures    string `csv:"UNCOVERED_PROCEDURES"`
	CoveredImmunizations   string `csv:"COVERED_IMMUNIZATIONS"`
	UncoveredImmunizations string `csv:"UNCOVERED_IMMUNIZATIONS"`
	UniqueCustomers        string `csv:"UNIQUE_CUSTOMERS"`
	QOLSAvg                string `csv:"QOLS_AVG"`
	MemberMonths           string `csv:"MEMBER_MONTHS"`
}

// PayerTransition is one row of payer_transitions.csv.
type PayerTransition struct {
	Patient        string `csv:"PATIENT"`
	MemberID       string `csv:"MEMBERID"`
	StartYear      string `csv:"START_YEAR"`
	EndYear        string `csv:"END_YEAR"`
	Payer          string `csv:"PAYER"`
	SecondaryPayer string `csv:"SECONDARY_PAYER"`
	Ownership      string `csv:"OWNERSHIP"`
	OwnerName      string `csv:"OWNERNAME"`
}

// Claim is one row of claims.csv. Diagnoses occupy eight fixed slots.
type Claim struct {
	ID                          string `csv:"Id"`
	PatientID                   string `csv:"PATIENTID"`
	ProviderID                  string `csv:"PROVIDERID"`
	PrimaryPatientInsuranceID   string `csv:"PRIMARYPATIENTINSURANCEID"`
	SecondaryPatientInsuranceID string `csv:"SECONDARYPATIENTINSURANCEID"`
	DepartmentID                string `csv:"DEPARTMENTID"`
	PatientDepartmentID         string `csv:"PATIENTDEPARTMENTID"`
	Diagnosis1                  string `csv:"DIAGNOSIS1"`
	Diagnosis2                  string `csv:"DIAGNOSIS2"`
	Diagnosis3                  string `csv:"DIAGNOSIS3"`
	Diagnosis4                  string `csv:"DIAGNOSIS4"`
	Diagnosis5                  string `csv:"DIAGNOSIS5"`
	Diagnosis6                  string `csv:"DIAGNOSIS6"`
	Diagnosis7                  string `csv:"DIAGNOSIS7"`
	Diagnosis8                  string `csv:"DIAGNOSIS8"`
	ReferringProviderID         string `csv:"REFERRINGPROVIDERID"`
	AppointmentID               string `csv:"APPOINTMENTID"`
	CurrentIllnessDate          string `csv:"CURRENTILLNESSDATE"`
	ServiceDate                 string `csv:"SERVICEDATE"`
	SupervisingProviderID       string `csv:"SUPERVISINGPROVIDERID"`
	Status1                     string `csv:"STATUS1"`
	Status2                     string `csv:"STATUS2"`
	StatusP                     string `csv:"STATUSP"`
	Outstanding1                string `csv:"OUTSTANDING1"`
	Outstanding2                string `csv:"OUTSTANDING2"`
	OutstandingP                string `csv:"OUTSTANDINGP"`
	LastBilledDate1             string `csv:"LASTBILLEDDATE1"`
	LastBilledDate2             string `csv:"LASTBILLEDDATE2"`
	LastBilledDateP             string `csv:"LASTBILLEDDATEP"`
	HealthcareClaimTypeID1      string `csv:"HEALTHCARECLAIMTYPEID1"`
	HealthcareClaimTypeID2      string `csv:"HEALTHCARECLAIMTYPEID2"`
}

// ClaimTransaction is one row of claims_transactions.csv.
type ClaimTransaction struct {
	ID                    string `csv:"ID"`
	ClaimID               string `csv:"CLAIMID"`
	ChargeID              string `csv:"CHARGEID"`
	PatientID             string `csv:"PATIENTID"`
	Type                  string `csv:"TYPE"`
	Amount                string `csv:"AMOUNT"`
	Method                string `csv:"METHOD"`
	FromDate              string `csv:"FROMDATE"`
	ToDate                string `csv:"TODATE"`
	PlaceOfService        string `csv:"PLACEOFSERVICE"`
	ProcedureCode         string `csv:"PROCEDURECODE"`
	Modifier1             string `csv:"MODIFIER1"`
	Modifier2             string `csv:"MODIFIER2"`
	DiagnosisRef1         string `csv:"DIAGNOSISREF1"`
	DiagnosisRef2         string `csv:"DIAGNOSISREF2"`
	DiagnosisRef3         string `csv:"DIAGNOSISREF3"`
	DiagnosisRef4         string `csv:"DIAGNOSISREF4"`
	Units                 string `csv:"UNITS"`
	DepartmentID          string `csv:"DEPARTMENTID"`
	Notes                 string `csv:"NOTES"`
	UnitAmount            string `csv:"UNITAMOUNT"`
	TransferOutID         string `csv:"TRANSFEROUTID"`
	TransferType          string `csv:"TRANSFERTYPE"`
	Payments              string `csv:"PAYMENTS"`
	Adjustments           string `csv:"ADJUSTMENTS"`
	Transfers             string `csv:"TRANSFERS"`
	Outstanding           string `csv:"OUTSTANDING"`
	AppointmentID         string `csv:"APPOINTMENTID"`
	LineNote              string `csv:"LINENOTE"`
	PatientInsuranceID    string `csv:"PATIENTINSURANCEID"`
	FeeScheduleID         string `csv:"FEESCHEDULEID"`
	ProviderID            string `csv:"PROVIDERID"`
	SupervisingProviderID string `csv:"SUPERVISINGPROVIDERID"`
}

// ImagingStudy is one row of imaging_studies.csv: one row per series
// instance.
type ImagingStudy struct {
	ID                  string `csv:"Id"`
	Date                string `csv:"DATE"`
	Patient             string `csv:"PATIENT"`
	Encounter           string `csv:"ENCOUNTER"`
	SeriesUID           string `csv:"SERIES_UID"`
	BodySiteCode        string `csv:"BODYSITE_CODE"`
	BodySiteDescription string `csv:"BODYSITE_DESCRIPTION"`
	ModalityCode        string `csv:"MODALITY_CODE"`
	ModalityDescription string `csv:"MODALITY_DESCRIPTION"`
	InstanceUID         string `csv:"INSTANCE_UID"`
	SOPCode             string `csv:"SOP_CODE"`
	SOPDescription      string `csv:"SOP_DESCRIPTION"`
	ProcedureCode       string `csv:"PROCEDURE_CODE"`
}

// Supply is one row of supplies.csv.
type Supply struct {
	Date        string `csv:"DATE"`
	Patient     string `csv:"PATIENT"`
	Encounter   string `csv:"ENCOUNTER"`
	Code        string `csv:"CODE"`
	Description string `csv:"DESCRIPTION"`
	Quantity    string `csv:"QUANTITY"`
}

// CarePlan is one row of careplans.csv.
type CarePlan struct {
	ID                string `csv:"Id"`
	Start             string `csv:"START"`
	Stop              string `csv:"STOP"`
	Patient           string `csv:"PATIENT"`
	Encounter         string `csv:"ENCOUNTER"`
	Code              string `csv:"CODE"`
	Description       string `csv:"DESCRIPTION"`
	ReasonCode        string `csv:"REASONCODE"`
	ReasonDescription string `csv:"REASONDESCRIPTION"`
}

// Immunization is one row of immunizations.csv.
type Immunization struct {
	Date        string `csv:"DATE"`
	Patient     string `csv:"PATIENT"`
	Encounter   string `csv:"ENCOUNTER"`
	Code        string `csv:"CODE"`
	Description string `csv:"DESCRIPTION"`
	BaseCost    string `csv:"BASE_COST"`
}

// Provider is one row of providers.csv.
type Provider struct {
	ID           string `csv:"Id"`
	Organization string `csv:"ORGANIZATION"`
	Name         string `csv:"NAME"`
	Gender       string `csv:"GENDER"`
	Speciality   string `csv:"SPECIALITY"`
	Address      string `csv:"ADDRESS"`
	City         string `csv:"CITY"`
	State        string `csv:"STATE"`
	Zip          string `csv:"ZIP"`
	Lat          string `csv:"LAT"`
	Lon          string `csv:"LON"`
	Utilization  string `csv:"UTILIZATION"`
}
