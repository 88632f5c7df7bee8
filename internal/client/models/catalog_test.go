package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_OrderAndShape(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 11)

	assert.Equal(t, DocBusinessPAN, c[0].Type)
	assert.Equal(t, DocBoardOfDirectors, c[len(c)-1].Type)

	mandatory := 0
	for _, e := range c {
		if e.Mandatory {
			mandatory++
		}
	}
	assert.Equal(t, 9, mandatory)
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	c := Catalog()
	c[0].Label = "changed"

	assert.Equal(t, "Business PAN Card", Catalog()[0].Label)
}

func TestCatalogFor_PreservesOrder(t *testing.T) {
	tests := []struct {
		category Category
		want     []DocumentType
	}{
		{CategoryKYC, []DocumentType{DocBusinessPAN, DocOwnerPAN, DocOwnerAadhaar, DocBusinessAddressProof}},
		{CategoryIncome, []DocumentType{DocPnL3Y, DocBalanceSheet3Y, DocITR3Y, DocBankStatement}},
		{CategoryBusiness, []DocumentType{DocBusinessRegistration, DocCIN, DocBoardOfDirectors}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			var got []DocumentType
			for _, e := range CatalogFor(tt.category) {
				got = append(got, e.Type)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogFor_UnknownCategoryIsEmpty(t *testing.T) {
	assert.Empty(t, CatalogFor(Category("OTHER")))
}

func TestDocumentType_Label(t *testing.T) {
	assert.Equal(t, "Owner's Aadhaar", DocOwnerAadhaar.Label())
	assert.Equal(t, "MYSTERY", DocumentType("MYSTERY").Label())
}

func TestCategory_Title(t *testing.T) {
	assert.Equal(t, "KYC Documents", CategoryKYC.Title())
	assert.Equal(t, "Income Proof", CategoryIncome.Title())
	assert.Equal(t, "Business Proof", CategoryBusiness.Title())
	assert.Equal(t, "OTHER", Category("OTHER").Title())
}

func TestDocumentStatus_IsReview(t *testing.T) {
	assert.True(t, StatusVerified.IsReview())
	assert.True(t, StatusRejected.IsReview())
	assert.False(t, StatusUploaded.IsReview())
	assert.False(t, DocumentStatus("").IsReview())
}
