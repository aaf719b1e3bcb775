package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"addrlease/internal/domain/lease"
)

func TestLeaseRepository_InsertEnforcesUniqueness(t *testing.T) {
	repo := NewLeaseRepository()
	rec := &lease.Record{
		Address:     lease.MustParseAddress("10.0.0.1"),
		NetworkName: "prod",
		InstanceRef: "prod/web/0",
	}

	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := repo.Insert(context.Background(), rec); !errors.Is(err, lease.ErrAddressTaken) {
		t.Fatalf("expected ErrAddressTaken, got %v", err)
	}

	// Same address on another network is a distinct pair.
	other := *rec
	other.NetworkName = "staging"
	if err := repo.Insert(context.Background(), &other); err != nil {
		t.Errorf("same address on other network must succeed: %v", err)
	}
}

func TestLeaseRepository_FindReturnsCopy(t *testing.T) {
	repo := NewLeaseRepository()
	addr := lease.MustParseAddress("10.0.0.2")
	if err := repo.Insert(context.Background(), &lease.Record{Address: addr, NetworkName: "prod", InstanceRef: "a"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec, err := repo.Find(context.Background(), addr, "prod")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	rec.InstanceRef = "tampered"

	again, err := repo.Find(context.Background(), addr, "prod")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if again.InstanceRef != "a" {
		t.Error("stored record was mutated through a returned copy")
	}

	if _, err := repo.Find(context.Background(), addr, "ghost"); !errors.Is(err, lease.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLeaseRepository_SetStaticAndDelete(t *testing.T) {
	repo := NewLeaseRepository()
	addr := lease.MustParseAddress("10.0.0.3")

	if err := repo.SetStatic(context.Background(), addr, "prod", true); !errors.Is(err, lease.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for missing record, got %v", err)
	}

	if err := repo.Insert(context.Background(), &lease.Record{Address: addr, NetworkName: "prod"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.SetStatic(context.Background(), addr, "prod", true); err != nil {
		t.Fatalf("set static: %v", err)
	}
	rec, _ := repo.Find(context.Background(), addr, "prod")
	if !rec.Static {
		t.Error("static flag not persisted")
	}

	if err := repo.Delete(context.Background(), addr, "prod"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(context.Background(), addr, "prod"); !errors.Is(err, lease.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestLeaseRepository_ConcurrentInsertSingleWinner(t *testing.T) {
	repo := NewLeaseRepository()
	addr := lease.MustParseAddress("10.0.0.4")

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Insert(context.Background(), &lease.Record{
				Address:     addr,
				NetworkName: "prod",
				InstanceRef: fmt.Sprintf("prod/web/%d", i),
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, lease.ErrAddressTaken) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning insert, got %d", wins)
	}
}

func TestLeaseRepository_ListAddresses(t *testing.T) {
	repo := NewLeaseRepository()
	for _, ip := range []string{"10.0.0.1", "10.0.0.5", "10.0.0.3"} {
		if err := repo.Insert(context.Background(), &lease.Record{
			Address:     lease.MustParseAddress(ip),
			NetworkName: "prod",
		}); err != nil {
			t.Fatalf("insert %s: %v", ip, err)
		}
	}

	addrs, err := repo.ListAddresses(context.Background(), "prod")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(addrs) != 3 {
		t.Errorf("expected 3 addresses, got %d", len(addrs))
	}

	empty, err := repo.ListAddresses(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty snapshot, got %v", empty)
	}
}
