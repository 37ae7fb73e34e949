package workflow

import "livestock-app/models"

var Procurement = New("procurement", map[models.ProcurementStatus][]models.ProcurementStatus{
	models.ProcurementBidding:     {models.ProcurementAwarded, models.ProcurementRejected, models.ProcurementCancelled},
	models.ProcurementAwarded:     {models.ProcurementHandingOver, models.ProcurementCancelled},
	models.ProcurementHandingOver: {models.ProcurementCompleted},
})

var BatchExport = New("batch_export", map[models.BatchExportStatus][]models.BatchExportStatus{
	models.BatchExportPending:     {models.BatchExportHandingOver, models.BatchExportCancelled},
	models.BatchExportHandingOver: {models.BatchExportCompleted},
})

var Order = New("order", map[models.OrderStatus][]models.OrderStatus{
	models.OrderNew:        {models.OrderPreparing, models.OrderCancelled},
	models.OrderPreparing:  {models.OrderDelivering, models.OrderCancelled},
	models.OrderDelivering: {models.OrderCompleted},
})

var Insurance = New("insurance", map[models.InsuranceStatus][]models.InsuranceStatus{
	models.InsurancePending:    {models.InsuranceProcessing, models.InsuranceRejected, models.InsuranceCancelled},
	models.InsuranceProcessing: {models.InsuranceApproved, models.InsuranceRejected, models.InsuranceCancelled},
	models.InsuranceApproved:   {models.InsuranceCompleted, models.InsuranceCancelled},
})

var BatchImport = New("batch_import", map[models.BatchImportStatus][]models.BatchImportStatus{
	models.BatchImportPending:   {models.BatchImportImporting, models.BatchImportCancelled},
	models.BatchImportImporting: {models.BatchImportCompleted},
})

var Vaccination = New("vaccination", map[models.VaccinationStatus][]models.VaccinationStatus{
	models.VaccinationPlanned:    {models.VaccinationInProgress, models.VaccinationCancelled},
	models.VaccinationInProgress: {models.VaccinationCompleted, models.VaccinationCancelled},
})

// Livestock covers manual health changes only. WAITING_EXPORT and EXPORTED are
// driven by the export, order and insurance workflows.
var Livestock = New("livestock", map[models.LivestockStatus][]models.LivestockStatus{
	models.LivestockUnidentified: {models.LivestockHealthy, models.LivestockSick, models.LivestockDead},
	models.LivestockHealthy:      {models.LivestockSick, models.LivestockDead},
	models.LivestockSick:         {models.LivestockHealthy, models.LivestockDead},
})
