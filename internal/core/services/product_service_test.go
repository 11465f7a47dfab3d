package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/database/memory"
)

type ProductServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	store := memory.NewStore()
	store.AddProduct(domain.Product{ProductID: "p-1", Name: "Checkbook", Type: domain.ProductTypeProduct, Price: decimal.NewFromInt(50), IsActive: true})
	store.AddProduct(domain.Product{ProductID: "p-2", Name: "Account statement", Type: domain.ProductTypeService, Price: decimal.NewFromInt(10), IsActive: true})
	store.AddProduct(domain.Product{ProductID: "p-3", Name: "Old card", Type: domain.ProductTypeProduct, Price: decimal.NewFromInt(20), IsActive: false})
	suite.service = services.NewProductService(store)
}

func (suite *ProductServiceTestSuite) TestListProducts_ActiveOnly() {
	products, err := suite.service.ListProducts(suite.ctx, true)

	suite.Require().NoError(err)
	suite.Require().Len(products, 2)
	suite.Equal("Account statement", products[0].Name)
	suite.Equal("Checkbook", products[1].Name)
}

func (suite *ProductServiceTestSuite) TestListProducts_All() {
	products, err := suite.service.ListProducts(suite.ctx, false)

	suite.Require().NoError(err)
	suite.Len(products, 3)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
