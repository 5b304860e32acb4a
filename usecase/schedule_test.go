package usecase

import (
	"context"
	"reflect"
	"testing"

	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

func newTestScheduleService(t *testing.T) domainSchedule.IScheduleUsecase {
	t.Helper()

	svc, err := NewScheduleService(newTestDB(t))
	if err != nil {
		t.Fatalf("NewScheduleService() unexpected error: %v", err)
	}
	return svc
}

func TestScheduleService_ReplaceCanonicalizes(t *testing.T) {
	svc := newTestScheduleService(t)
	ctx := context.Background()

	canonical, err := svc.Replace(ctx, domainSchedule.ReplaceRequest{Hours: []int{14, 9, 14, 9, 20}})
	if err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	want := []int{9, 14, 20}
	if !reflect.DeepEqual(canonical, want) {
		t.Fatalf("Replace() = %v, want %v", canonical, want)
	}

	hours, err := svc.Hours(ctx)
	if err != nil {
		t.Fatalf("Hours() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(hours, want) {
		t.Fatalf("Hours() = %v, want %v", hours, want)
	}
}

func TestScheduleService_ReplaceIsWholesale(t *testing.T) {
	svc := newTestScheduleService(t)
	ctx := context.Background()

	if _, err := svc.Replace(ctx, domainSchedule.ReplaceRequest{Hours: []int{8, 12}}); err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	if _, err := svc.Replace(ctx, domainSchedule.ReplaceRequest{Hours: []int{17}}); err != nil {
		t.Fatalf("Replace() second call unexpected error: %v", err)
	}

	hours, err := svc.Hours(ctx)
	if err != nil {
		t.Fatalf("Hours() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(hours, []int{17}) {
		t.Fatalf("Hours() = %v, want [17]", hours)
	}
}

func TestScheduleService_ReplaceRejectsInvalid(t *testing.T) {
	svc := newTestScheduleService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		hours []int
	}{
		{"empty", nil},
		{"negative", []int{-1}},
		{"above 23", []int{24}},
	}
	for _, tc := range cases {
		_, err := svc.Replace(ctx, domainSchedule.ReplaceRequest{Hours: tc.hours})
		if err == nil {
			t.Fatalf("Replace(%s) expected error", tc.name)
		}
		genericErr, ok := err.(pkgError.GenericError)
		if !ok || genericErr.StatusCode() != 400 {
			t.Fatalf("Replace(%s) error = %v, want 400 GenericError", tc.name, err)
		}
	}
}

func TestScheduleService_HoursEmptyByDefault(t *testing.T) {
	svc := newTestScheduleService(t)

	hours, err := svc.Hours(context.Background())
	if err != nil {
		t.Fatalf("Hours() unexpected error: %v", err)
	}
	if len(hours) != 0 {
		t.Fatalf("Hours() = %v, want empty", hours)
	}
}
