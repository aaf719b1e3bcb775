package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"addrlease/internal/adapters/db/memory"
	"addrlease/internal/application/allocator"
	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
)

// Playground: a handful of deployers race for addresses on one small subnet.
// Each goroutine goes through the same insert-first path the server uses, so
// the uniqueness check in the repository is the only thing keeping them from
// colliding.

const demoWorkers = 8

func main() {
	subnet, err := deployment.NewSubnet("10.0.0.0/28",
		[]string{"10.0.0.4"},
		[]string{"10.0.0.10"},
	)
	if err != nil {
		panic(err)
	}
	net := &deployment.Network{
		ID:      uuid.NewString(),
		Name:    "demo",
		Subnets: []*deployment.Subnet{subnet},
	}

	repo := memory.NewLeaseRepository()
	svc := allocator.NewService(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < demoWorkers; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			res := &deployment.Reservation{
				NetworkName: net.Name,
				Instance:    deployment.Instance{Deployment: "demo-dep", Job: "worker", Index: index},
				Type:        deployment.ReservationUnresolved,
			}
			taskID := fmt.Sprintf("task-%d", index)
			_, ok, err := svc.AllocateDynamic(ctx, taskID, net, subnet, res)
			if err != nil {
				fmt.Printf("worker %d: %v\n", index, err)
				return
			}
			if !ok {
				fmt.Printf("worker %d: pool exhausted\n", index)
			}
		}(i)
	}
	wg.Wait()

	// One static reservation on top, reserved twice to show idempotency.
	static := &deployment.Reservation{
		IP:          lease.MustParseAddress("10.0.0.10"),
		NetworkName: net.Name,
		Instance:    deployment.Instance{Deployment: "demo-dep", Job: "db", Index: 0},
		Type:        deployment.ReservationUnresolved,
	}
	for i := 0; i < 2; i++ {
		if err := svc.Reserve(ctx, "task-static", net, static); err != nil {
			fmt.Printf("static reserve: %v\n", err)
		}
	}

	records, err := repo.List(ctx, net.Name)
	if err != nil {
		panic(err)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Address < records[j].Address })

	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-14s %-22s %-8s %s\n", "ADDRESS", "INSTANCE", "STATIC", "TASK")
	fmt.Println(strings.Repeat("-", 56))
	for _, rec := range records {
		fmt.Printf("%-14s %-22s %-8t %s\n", rec.Address.String(), rec.InstanceRef, rec.Static, rec.TaskID)
	}
}
