package models

type LivestockStatus string

const (
	LivestockHealthy       LivestockStatus = "HEALTHY"
	LivestockSick          LivestockStatus = "SICK"
	LivestockWaitingExport LivestockStatus = "WAITING_EXPORT"
	LivestockExported      LivestockStatus = "EXPORTED"
	LivestockDead          LivestockStatus = "DEAD"
	LivestockUnidentified  LivestockStatus = "UNIDENTIFIED"
)

type ProcurementStatus string

const (
	ProcurementBidding     ProcurementStatus = "BIDDING"
	ProcurementAwarded     ProcurementStatus = "AWARDED"
	ProcurementHandingOver ProcurementStatus = "HANDING_OVER"
	ProcurementCompleted   ProcurementStatus = "COMPLETED"
	ProcurementCancelled   ProcurementStatus = "CANCELLED"
	ProcurementRejected    ProcurementStatus = "REJECTED"
)

type BatchExportStatus string

const (
	BatchExportPending     BatchExportStatus = "PENDING"
	BatchExportHandingOver BatchExportStatus = "HANDING_OVER"
	BatchExportCompleted   BatchExportStatus = "COMPLETED"
	BatchExportCancelled   BatchExportStatus = "CANCELLED"
)

// ExportDetailStatus is shared by batch export details and order details.
type ExportDetailStatus string

const (
	ExportDetailPendingHandover ExportDetailStatus = "PENDING_HANDOVER"
	ExportDetailHandedOver      ExportDetailStatus = "HANDED_OVER"
	ExportDetailReplaced        ExportDetailStatus = "REPLACED"
)

type OrderStatus string

const (
	OrderNew        OrderStatus = "NEW"
	OrderPreparing  OrderStatus = "PREPARING"
	OrderDelivering OrderStatus = "DELIVERING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type InsuranceStatus string

const (
	InsurancePending    InsuranceStatus = "PENDING"
	InsuranceProcessing InsuranceStatus = "PROCESSING"
	InsuranceApproved   InsuranceStatus = "APPROVED"
	InsuranceRejected   InsuranceStatus = "REJECTED"
	InsuranceCompleted  InsuranceStatus = "COMPLETED"
	InsuranceCancelled  InsuranceStatus = "CANCELLED"
)

type BatchImportStatus string

const (
	BatchImportPending   BatchImportStatus = "PENDING"
	BatchImportImporting BatchImportStatus = "IMPORTING"
	BatchImportCompleted BatchImportStatus = "COMPLETED"
	BatchImportCancelled BatchImportStatus = "CANCELLED"
)

type VaccinationStatus string

const (
	VaccinationPlanned    VaccinationStatus = "PLANNED"
	VaccinationInProgress VaccinationStatus = "IN_PROGRESS"
	VaccinationCompleted  VaccinationStatus = "COMPLETED"
	VaccinationCancelled  VaccinationStatus = "CANCELLED"
)

type MedicineType string

const (
	MedicineTypeVaccine   MedicineType = "VACCINE"
	MedicineTypeTreatment MedicineType = "TREATMENT"
	MedicineTypeOther     MedicineType = "OTHER"
)

// OpenInsuranceStatuses are claims still blocking their livestock.
var OpenInsuranceStatuses = []InsuranceStatus{InsurancePending, InsuranceProcessing, InsuranceApproved}
