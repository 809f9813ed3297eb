package grpc_control

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"sales-report/src/helpers"
	"sales-report/src/logger"
	"sales-report/src/models"
)

type stubProvider struct {
	view *models.MReportView
	err  error
}

func (p *stubProvider) Snapshot() *models.MReportView { return p.view }
func (p *stubProvider) Refresh(context.Context) (*models.MReportView, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.view = &models.MReportView{SnapshotID: "fresh", Monthly: make([]models.MMonthlyRow, 12)}
	return p.view, nil
}
func (p *stubProvider) Status() models.MServiceStatus {
	return models.MServiceStatus{Status: "ok", Generation: 3}
}

func dial(t *testing.T, p *stubProvider) ReportControlClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(&models.MConfig{}, NewControlService(p, logger.NewNopLogger()), logger.NewNopLogger())
	go srv.Serve(lis)
	t.Cleanup(func() { srv.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewReportControlClient(conn)
}

func TestGetReportUnavailableThenRefresh(t *testing.T) {
	p := &stubProvider{}
	client := dial(t, p)
	ctx := context.Background()

	_, err := client.GetReport(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	out, err := client.Refresh(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "fresh", out.Fields["snapshot_id"].GetStringValue())

	report, err := client.GetReport(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, report.Fields["monthly"].GetListValue().GetValues(), 12)
}

func TestRefreshErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{helpers.NewDataLoadError("clean", 0, "no valid rows", nil), codes.Unavailable},
		{helpers.NewReferenceNotFoundError("city aggregate", "San Francisco"), codes.FailedPrecondition},
		{helpers.NewContractViolationError("hourly", "23 buckets"), codes.Internal},
		{errors.New("boom"), codes.Internal},
	}
	for _, c := range cases {
		client := dial(t, &stubProvider{err: c.err})
		_, err := client.Refresh(context.Background(), &emptypb.Empty{})
		assert.Equal(t, c.code, status.Code(err), c.err.Error())
	}
}

func TestHealth(t *testing.T) {
	client := dial(t, &stubProvider{})
	out, err := client.Health(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Fields["status"].GetStringValue())
	assert.Equal(t, 3.0, out.Fields["generation"].GetNumberValue())
}
