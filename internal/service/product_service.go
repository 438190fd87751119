package service

import (
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	syncSvc     *PriceSyncService
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository, syncSvc *PriceSyncService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
		syncSvc:     syncSvc,
	}
}

// GetBySlug 前台商品详情（含规格与阶梯价）
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

// GetByID 按ID获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Save 创建或更新商品
func (s *ProductService) Save(product *models.Product) error {
	if product.ID == 0 {
		return s.productRepo.Create(product)
	}
	return s.productRepo.Update(product)
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	return s.productRepo.Delete(id)
}

// SaveVariant 创建或更新规格；价格相关字段变动后失效定价缓存
func (s *ProductService) SaveVariant(variant *models.ProductVariant) error {
	var err error
	if variant.ID == 0 {
		err = s.variantRepo.Create(variant)
	} else {
		err = s.variantRepo.Update(variant)
	}
	if err != nil {
		return err
	}
	s.syncSvc.Invalidate(variant.ID)
	return nil
}

// DeleteVariant 删除规格
func (s *ProductService) DeleteVariant(id uint) error {
	if err := s.variantRepo.Delete(id); err != nil {
		return err
	}
	s.syncSvc.Invalidate(id)
	return nil
}
