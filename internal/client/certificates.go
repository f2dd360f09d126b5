package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

const certificatePath = "/certificates(thumbprintAlgorithm={thumbprintAlgorithm},thumbprint={thumbprint})"

var (
	certificateList = operation{name: "Certificate_List", method: http.MethodGet, path: "/certificates", successCode: http.StatusOK}
	certificateGet  = operation{
		name: "Certificate_Get", method: http.MethodGet, path: certificatePath, successCode: http.StatusOK,
		required: []string{paramThumbprintAlgorithm, paramThumbprint}, cacheable: true,
	}
	certificateAdd = operation{
		name: "Certificate_Add", method: http.MethodPost, path: "/certificates", successCode: http.StatusCreated,
		required: []string{paramBody},
	}
	certificateDelete = operation{
		name: "Certificate_Delete", method: http.MethodDelete, path: certificatePath, successCode: http.StatusAccepted,
		required: []string{paramThumbprintAlgorithm, paramThumbprint}, evicts: certificatePath,
	}
	certificateCancelDeletion = operation{
		name: "Certificate_CancelDeletion", method: http.MethodPost, path: certificatePath + "/canceldelete", successCode: http.StatusNoContent,
		required: []string{paramThumbprintAlgorithm, paramThumbprint}, evicts: certificatePath,
	}
)

// CertificatesClient implements batch.CertificatesClient.
type CertificatesClient struct {
	inv *invoker
}

// NewCertificatesClient creates a new certificates client.
func NewCertificatesClient(inv *invoker) *CertificatesClient {
	return &CertificatesClient{inv: inv}
}

// List implements batch.CertificatesClient.List.
func (c *CertificatesClient) List(ctx context.Context, opts *batch.ListOptions) *batch.Pager[batch.Certificate] {
	return batch.NewPager(pager[batch.Certificate](c.inv, certificateList, call{query: opts.ToValues()}))
}

// ListAsync implements batch.CertificatesClient.ListAsync.
func (c *CertificatesClient) ListAsync(
	ctx context.Context,
	opts *batch.ListOptions,
	callbacks batch.ListCallbacks[batch.Certificate],
) *batch.Future[[]batch.Certificate] {
	return batch.ListAsync(ctx, pager[batch.Certificate](c.inv, certificateList, call{query: opts.ToValues()}), callbacks)
}

// Get implements batch.CertificatesClient.Get.
func (c *CertificatesClient) Get(
	ctx context.Context,
	thumbprintAlgorithm, thumbprint string,
	opts *batch.GetOptions,
) (*batch.CertificateResponse, error) {
	return invoke[batch.Certificate, batch.ResponseHeaders](ctx, c.inv, certificateGet, call{
		params: params(paramThumbprintAlgorithm, thumbprintAlgorithm, paramThumbprint, thumbprint),
		query:  opts.ToValues(),
	})
}

// Add implements batch.CertificatesClient.Add.
func (c *CertificatesClient) Add(ctx context.Context, certificate *batch.CertificateAddRequest) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, certificateAdd, call{body: certificate})
}

// Delete implements batch.CertificatesClient.Delete.
func (c *CertificatesClient) Delete(ctx context.Context, thumbprintAlgorithm, thumbprint string) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, certificateDelete, call{
		params: params(paramThumbprintAlgorithm, thumbprintAlgorithm, paramThumbprint, thumbprint),
	})
}

// CancelDeletion implements batch.CertificatesClient.CancelDeletion.
func (c *CertificatesClient) CancelDeletion(ctx context.Context, thumbprintAlgorithm, thumbprint string) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, certificateCancelDeletion, call{
		params: params(paramThumbprintAlgorithm, thumbprintAlgorithm, paramThumbprint, thumbprint),
	})
}
