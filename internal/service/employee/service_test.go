package employee

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/sync"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cache"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
	"github.com/staffsync/attendance-backend-go/internal/repository/memory"
)

type recordingOutbox struct {
	ops []sync.Operation
}

func (o *recordingOutbox) Enqueue(op sync.Operation) {
	o.ops = append(o.ops, op)
}

func setup(t *testing.T) (employee.Service, *recordingOutbox) {
	t.Helper()
	store := memory.NewStore(cache.NewMemory(0), nil, slog.Default())
	outbox := &recordingOutbox{}
	return NewService(memory.NewEmployeeRepository(store), outbox, slog.Default()), outbox
}

func registerRequest(id string) employee.RegisterEmployeeRequest {
	return employee.RegisterEmployeeRequest{
		ID:          id,
		Name:        "Test Person",
		Shift:       "day",
		WorkingDays: 22,
		Salary:      decimal.NewFromInt(26000),
		PaymentDay:  25,
		Department:  "Engineering",
	}
}

func TestRegister(t *testing.T) {
	svc, outbox := setup(t)

	emp, err := svc.Register(context.Background(), registerRequest("EMP-1"))
	require.NoError(t, err)
	assert.Equal(t, employee.StatusActive, emp.Status)
	require.Len(t, outbox.ops, 1)
	assert.Equal(t, sync.KindEmployeeAdd, outbox.ops[0].Kind)
	assert.Equal(t, "EMP-1", outbox.ops[0].Payload["id"])
}

func TestRegisterValidation(t *testing.T) {
	svc, outbox := setup(t)

	req := registerRequest("bad/id")
	req.Salary = decimal.NewFromInt(-5)
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "salary")
	assert.Empty(t, outbox.ops)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("EMP-1"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerRequest("EMP-1"))
	assert.ErrorIs(t, err, employee.ErrEmployeeExists)
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("EMP-1"))
	require.NoError(t, err)

	newSalary := decimal.NewFromInt(30000)
	emp, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "EMP-1", Salary: &newSalary})
	require.NoError(t, err)
	assert.True(t, emp.Salary.Equal(newSalary))
	assert.Equal(t, "Test Person", emp.Name)
}

func TestDeactivate(t *testing.T) {
	svc, outbox := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("EMP-1"))
	require.NoError(t, err)

	emp, err := svc.Deactivate(ctx, employee.DeactivateEmployeeRequest{ID: "EMP-1", Reason: "resigned"})
	require.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, emp.Status)
	require.NotNil(t, emp.DeactivationReason)
	assert.Equal(t, "resigned", *emp.DeactivationReason)
	assert.NotNil(t, emp.DeactivatedAt)
	require.Len(t, outbox.ops, 2)
	assert.Equal(t, sync.KindEmployeeUpdate, outbox.ops[1].Kind)

	// Deactivating twice fails.
	_, err = svc.Deactivate(ctx, employee.DeactivateEmployeeRequest{ID: "EMP-1", Reason: "again"})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestRenameEnqueuesDeleteAddAndFullSync(t *testing.T) {
	svc, outbox := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("OLD"))
	require.NoError(t, err)
	outbox.ops = nil

	emp, err := svc.Rename(ctx, employee.RenameEmployeeRequest{ID: "OLD", NewID: "NEW"})
	require.NoError(t, err)
	assert.Equal(t, "NEW", emp.ID)

	require.Len(t, outbox.ops, 3)
	assert.Equal(t, sync.KindEmployeeDelete, outbox.ops[0].Kind)
	assert.Equal(t, "OLD", outbox.ops[0].Filter["id"])
	assert.Equal(t, sync.KindEmployeeAdd, outbox.ops[1].Kind)
	assert.Equal(t, sync.KindFullSync, outbox.ops[2].Kind)
}
