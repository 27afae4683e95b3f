package models

import (
	"testing"

	"google.golang.org/genproto/googleapis/type/latlng"
)

func validFundraiser() Fundraiser {
	return Fundraiser{
		Title:                "Community Garden",
		Description:          "Raised beds for the neighborhood",
		GoalAmount:           2500,
		Location:             &latlng.LatLng{Latitude: 37.77, Longitude: -122.42},
		ExternalDonationLink: "https://donate.example.com/garden",
		CreatorID:            "u1",
	}
}

func TestValidateCatchesMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Fundraiser)
	}{
		{"missing title", func(f *Fundraiser) { f.Title = "" }},
		{"missing description", func(f *Fundraiser) { f.Description = "" }},
		{"zero goal", func(f *Fundraiser) { f.GoalAmount = 0 }},
		{"negative goal", func(f *Fundraiser) { f.GoalAmount = -1 }},
		{"missing location", func(f *Fundraiser) { f.Location = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFundraiser()
			tc.mutate(&f)
			if f.Validate() == nil {
				t.Fatal("Validate accepted a malformed fundraiser")
			}
		})
	}
}

func TestValidateAcceptsCompleteFundraiser(t *testing.T) {
	f := validFundraiser()
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// A document decoded from the store with missing fields comes back as zero
// values, so Validate doubles as the read-side shape check.
func TestValidateRejectsZeroValueDocument(t *testing.T) {
	var f Fundraiser
	f.ID = "doc-1"
	if f.Validate() == nil {
		t.Fatal("Validate accepted an all-zero document")
	}
}

func TestValidateDraftChecksDonationLink(t *testing.T) {
	cases := []struct {
		name string
		link string
		ok   bool
	}{
		{"https", "https://donate.example.com/garden", true},
		{"http", "http://donate.example.com/garden", true},
		{"empty", "", false},
		{"no scheme", "donate.example.com", false},
		{"wrong scheme", "ftp://donate.example.com", false},
		{"garbage", "not a url", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFundraiser()
			f.ExternalDonationLink = tc.link
			err := f.ValidateDraft()
			if tc.ok && err != nil {
				t.Fatalf("ValidateDraft: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("ValidateDraft accepted %q", tc.link)
			}
		})
	}
}
