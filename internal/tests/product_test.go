package tests

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/service"
)

func newProductFixture() (*MockProductRepository, *MockUserRepository, *service.ProductService) {
	productRepo := NewMockProductRepository()
	userRepo := NewMockUserRepository()
	svc := service.NewProductService(productRepo, userRepo, NewMockProductCache(), zap.NewNop().Sugar())
	return productRepo, userRepo, svc
}

func TestCreateProduct_StartsInactive(t *testing.T) {
	t.Parallel()

	_, userRepo, svc := newProductFixture()
	userRepo.AddUser(&domain.UserProfile{ID: "seller-1", IsSeller: true})

	product, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{
		SellerID: "seller-1",
		Title:    "Mountain bike",
		Price:    25,
	})
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	if product.Status != domain.ProductStatusInactive {
		t.Errorf("new listing must be inactive until the fee is paid, got %q", product.Status)
	}
	if product.Currency != "WLD" {
		t.Errorf("expected default currency WLD, got %q", product.Currency)
	}
}

func TestCreateProduct_RequiresSellerProfile(t *testing.T) {
	t.Parallel()

	productRepo, userRepo, svc := newProductFixture()
	userRepo.AddUser(&domain.UserProfile{ID: "buyer-1", IsSeller: false})

	_, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{
		SellerID: "buyer-1",
		Title:    "Mountain bike",
		Price:    25,
	})
	if !errors.Is(err, service.ErrNotSeller) {
		t.Fatalf("expected ErrNotSeller, got %v", err)
	}
	if productRepo.CreateCallCount != 0 {
		t.Error("no listing must be created for a non-seller")
	}
}

func TestCreateProduct_RejectsInvalidPrice(t *testing.T) {
	t.Parallel()

	_, userRepo, svc := newProductFixture()
	userRepo.AddUser(&domain.UserProfile{ID: "seller-1", IsSeller: true})

	_, err := svc.CreateProduct(context.Background(), service.CreateProductRequest{
		SellerID: "seller-1",
		Title:    "Freebie",
		Price:    0,
	})
	if !errors.Is(err, service.ErrInvalidListingPrice) {
		t.Fatalf("expected ErrInvalidListingPrice, got %v", err)
	}
}

func TestBrowseProducts_OnlyActiveListings(t *testing.T) {
	t.Parallel()

	productRepo, _, svc := newProductFixture()
	productRepo.AddProduct(&domain.Product{ID: "p1", Status: domain.ProductStatusActive})
	productRepo.AddProduct(&domain.Product{ID: "p2", Status: domain.ProductStatusInactive})
	productRepo.AddProduct(&domain.Product{ID: "p3", Status: domain.ProductStatusSold})

	products, err := svc.BrowseProducts(context.Background(), "", "", 0, 0)
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("expected only the active listing, got %d products", len(products))
	}
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	t.Parallel()

	productRepo, _, svc := newProductFixture()
	productRepo.AddProduct(&domain.Product{ID: "p1", SellerID: "seller-1", Status: domain.ProductStatusActive})

	product, err := svc.UpdateStatus(context.Background(), "p1", "seller-1", domain.ProductStatusPaused)
	if err != nil {
		t.Fatalf("pausing failed: %v", err)
	}
	if product.Status != domain.ProductStatusPaused {
		t.Errorf("expected paused, got %q", product.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), "p1", "seller-1", domain.ProductStatusSold); err != nil {
		t.Fatalf("marking sold failed: %v", err)
	}
}

func TestUpdateStatus_RejectsInvalidTransition(t *testing.T) {
	t.Parallel()

	productRepo, _, svc := newProductFixture()
	productRepo.AddProduct(&domain.Product{ID: "p1", SellerID: "seller-1", Status: domain.ProductStatusInactive})

	// Activation happens through payment verification, never directly.
	_, err := svc.UpdateStatus(context.Background(), "p1", "seller-1", domain.ProductStatusActive)
	if !errors.Is(err, service.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestGetProduct_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()

	productRepo := NewMockProductRepository()
	cache := NewMockProductCache()
	svc := service.NewProductService(productRepo, NewMockUserRepository(), cache, zap.NewNop().Sugar())
	productRepo.AddProduct(&domain.Product{ID: "p1", SellerID: "seller-1", Title: "Bike", Status: domain.ProductStatusActive})

	if _, err := svc.GetProduct(context.Background(), "p1"); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if cache.SetCallCount != 1 {
		t.Errorf("expected cache fill, got %d sets", cache.SetCallCount)
	}

	product, err := svc.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if product.Title != "Bike" {
		t.Errorf("unexpected cached product %+v", product)
	}

	// A status change drops the cached copy.
	if _, err := svc.UpdateStatus(context.Background(), "p1", "seller-1", domain.ProductStatusPaused); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if cache.InvalidateCallCount != 1 {
		t.Errorf("expected cache invalidation on status change, got %d", cache.InvalidateCallCount)
	}
}

func TestUpdateStatus_RejectsNonOwner(t *testing.T) {
	t.Parallel()

	productRepo, _, svc := newProductFixture()
	productRepo.AddProduct(&domain.Product{ID: "p1", SellerID: "seller-1", Status: domain.ProductStatusActive})

	_, err := svc.UpdateStatus(context.Background(), "p1", "intruder", domain.ProductStatusPaused)
	if !errors.Is(err, service.ErrNotListingOwner) {
		t.Fatalf("expected ErrNotListingOwner, got %v", err)
	}
}
