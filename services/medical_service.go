package services

import (
	"context"
	"fmt"
	"strings"

	"livestock-app/dto"
	"livestock-app/models"

	"gorm.io/gorm"
)

type MedicalService struct {
	DB *gorm.DB
}

func NewMedicalService(db *gorm.DB) *MedicalService {
	return &MedicalService{DB: db}
}

// medicineNameTaken compares names exactly. The SQL filter may be case-insensitive
// depending on the collation, so the final comparison happens in Go.
func (s *MedicalService) medicineNameTaken(tx *gorm.DB, name string, excludeID uint) (bool, error) {
	var names []string
	query := tx.Model(&models.Medicine{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Pluck("name", &names).Error; err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *MedicalService) CreateMedicine(ctx context.Context, req dto.MedicineRequest, actor int) (*models.Medicine, error) {
	medicine := models.Medicine{
		Name:        strings.TrimSpace(req.Name),
		Type:        req.Type,
		Description: req.Description,
		CreatedBy:   actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.medicineNameTaken(tx, medicine.Name, 0)
		if err != nil {
			return fmt.Errorf("check medicine name: %w", err)
		}
		if taken {
			return Conflict(MsgMedicineExists)
		}
		return tx.Create(&medicine).Error
	})
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (s *MedicalService) UpdateMedicine(ctx context.Context, id uint, req dto.MedicineRequest, actor int) (*models.Medicine, error) {
	var medicine models.Medicine
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&medicine, id).Error; err != nil {
			return notFoundOr(err, MsgMedicineNotFound, "find medicine")
		}

		name := strings.TrimSpace(req.Name)
		taken, err := s.medicineNameTaken(tx, name, id)
		if err != nil {
			return fmt.Errorf("check medicine name: %w", err)
		}
		if taken {
			return Conflict(MsgMedicineExists)
		}

		medicine.Name = name
		medicine.Type = req.Type
		medicine.Description = req.Description
		medicine.UpdatedBy = actor
		return tx.Save(&medicine).Error
	})
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (s *MedicalService) GetMedicine(ctx context.Context, id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := s.DB.WithContext(ctx).First(&medicine, id).Error; err != nil {
		return nil, notFoundOr(err, MsgMedicineNotFound, "find medicine")
	}
	return &medicine, nil
}

func (s *MedicalService) ListMedicines(ctx context.Context, keyword string, medicineType models.MedicineType) ([]models.Medicine, error) {
	medicines := []models.Medicine{}
	query := s.DB.WithContext(ctx).Model(&models.Medicine{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	if medicineType != "" {
		query = query.Where("type = ?", medicineType)
	}
	if err := query.Order("name").Find(&medicines).Error; err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return medicines, nil
}

func (s *MedicalService) DeleteMedicine(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var medicine models.Medicine
		if err := tx.First(&medicine, id).Error; err != nil {
			return notFoundOr(err, MsgMedicineNotFound, "find medicine")
		}

		for _, model := range []interface{}{&models.DiseaseMedicine{}, &models.VaccinationBatch{}} {
			var count int64
			if err := tx.Model(model).Where("medicine_id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("check medicine usage: %w", err)
			}
			if count > 0 {
				return BadRequest(MsgMedicineInUse)
			}
		}

		if err := tx.Model(&medicine).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&medicine).Error
	})
}

func (s *MedicalService) diseaseNameTaken(tx *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	query := tx.Model(&models.Disease{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (s *MedicalService) CreateDisease(ctx context.Context, req dto.DiseaseRequest, actor int) (*models.Disease, error) {
	disease := models.Disease{
		Name:        strings.TrimSpace(req.Name),
		Symptom:     req.Symptom,
		Description: req.Description,
		CreatedBy:   actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.diseaseNameTaken(tx, disease.Name, 0)
		if err != nil {
			return fmt.Errorf("check disease name: %w", err)
		}
		if taken {
			return Conflict(MsgDiseaseExists)
		}
		return tx.Create(&disease).Error
	})
	if err != nil {
		return nil, err
	}
	return &disease, nil
}

func (s *MedicalService) UpdateDisease(ctx context.Context, id uint, req dto.DiseaseRequest, actor int) (*models.Disease, error) {
	var disease models.Disease
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&disease, id).Error; err != nil {
			return notFoundOr(err, MsgDiseaseNotFound, "find disease")
		}

		name := strings.TrimSpace(req.Name)
		taken, err := s.diseaseNameTaken(tx, name, id)
		if err != nil {
			return fmt.Errorf("check disease name: %w", err)
		}
		if taken {
			return Conflict(MsgDiseaseExists)
		}

		disease.Name = name
		disease.Symptom = req.Symptom
		disease.Description = req.Description
		disease.UpdatedBy = actor
		return tx.Save(&disease).Error
	})
	if err != nil {
		return nil, err
	}
	return &disease, nil
}

func (s *MedicalService) GetDisease(ctx context.Context, id uint) (*models.Disease, error) {
	var disease models.Disease
	err := s.DB.WithContext(ctx).
		Preload("DiseaseMedicines.Medicine").
		First(&disease, id).Error
	if err != nil {
		return nil, notFoundOr(err, MsgDiseaseNotFound, "find disease")
	}
	return &disease, nil
}

func (s *MedicalService) ListDiseases(ctx context.Context, keyword string) ([]models.Disease, error) {
	diseases := []models.Disease{}
	query := s.DB.WithContext(ctx).Model(&models.Disease{}).Preload("DiseaseMedicines.Medicine")
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(symptom) LIKE ?", like, like)
	}
	if err := query.Order("name").Find(&diseases).Error; err != nil {
		return nil, fmt.Errorf("list diseases: %w", err)
	}
	return diseases, nil
}

func (s *MedicalService) DeleteDisease(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var disease models.Disease
		if err := tx.First(&disease, id).Error; err != nil {
			return notFoundOr(err, MsgDiseaseNotFound, "find disease")
		}

		for _, model := range []interface{}{&models.InsuranceRequest{}, &models.VaccinationBatch{}} {
			var count int64
			if err := tx.Model(model).Where("disease_id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("check disease usage: %w", err)
			}
			if count > 0 {
				return BadRequest(MsgDiseaseInUse)
			}
		}

		if err := tx.Where("disease_id = ?", id).Delete(&models.DiseaseMedicine{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&disease).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&disease).Error
	})
}

func (s *MedicalService) AddMedicineToDisease(ctx context.Context, diseaseID uint, req dto.DiseaseMedicineRequest, actor int) (*models.DiseaseMedicine, error) {
	link := models.DiseaseMedicine{
		DiseaseID:   diseaseID,
		MedicineID:  req.MedicineID,
		Description: req.Description,
		CreatedBy:   actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var disease models.Disease
		if err := tx.First(&disease, diseaseID).Error; err != nil {
			return notFoundOr(err, MsgDiseaseNotFound, "find disease")
		}
		var medicine models.Medicine
		if err := tx.First(&medicine, req.MedicineID).Error; err != nil {
			return notFoundOr(err, MsgMedicineNotFound, "find medicine")
		}

		var count int64
		if err := tx.Model(&models.DiseaseMedicine{}).
			Where("disease_id = ? AND medicine_id = ?", diseaseID, req.MedicineID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return Conflict(MsgMedicineLinked)
		}

		if err := tx.Create(&link).Error; err != nil {
			return err
		}
		link.Medicine = &medicine
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *MedicalService) RemoveMedicineFromDisease(ctx context.Context, diseaseID, medicineID uint) error {
	result := s.DB.WithContext(ctx).
		Where("disease_id = ? AND medicine_id = ?", diseaseID, medicineID).
		Delete(&models.DiseaseMedicine{})
	if result.Error != nil {
		return fmt.Errorf("unlink medicine: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound(MsgMedicineNotLink)
	}
	return nil
}
