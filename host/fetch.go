package host

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	httpboundary "github.com/wippyai/http-boundary"
	"github.com/wippyai/http-boundary/abi"
	"github.com/wippyai/http-boundary/errors"
	"github.com/wippyai/http-boundary/httpvalue"
)

// Namespace is the default WIT interface name of the fetch capability.
const Namespace = "wippy:http/fetch@0.1.0"

// CabiRealloc is the guest allocator export used to place the response.
const CabiRealloc = "cabi_realloc"

// Errno values returned by the fetch host call.
const (
	ErrnoOK uint32 = iota
	ErrnoInvalidRequest
	ErrnoBadMethod
	ErrnoBadRequest
	ErrnoTransport
	ErrnoEncode
	ErrnoNoAllocator
)

// requestWit is the host-side schema of the guest's request record. The
// headers and body fields use the same binary-safe shapes as the
// response schema.
var requestWit = func() wit.Type {
	byteList := &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}
	headerPair := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.String{}, byteList}}}
	headerList := &wit.TypeDef{Kind: &wit.List{Type: headerPair}}
	return &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "method", Type: httpvalue.MethodWitType()},
		{Name: "url", Type: wit.String{}},
		{Name: "headers", Type: headerList},
		{Name: "body", Type: byteList},
	}}}
}()

var (
	requestOnce     sync.Once
	requestCompiler *abi.Compiler
	requestCompiled *abi.CompiledType
	requestErr      error
)

func requestSchema() (*abi.Compiler, *abi.CompiledType, error) {
	requestOnce.Do(func() {
		requestCompiler = abi.NewCompiler()
		requestCompiled, requestErr = requestCompiler.Compile(requestWit)
	})
	return requestCompiler, requestCompiled, requestErr
}

// fetchRequest is the decoded guest request.
type fetchRequest struct {
	url     string
	headers []httpvalue.Header
	body    []byte
	method  httpvalue.Method
}

// FetchHost serves the fetch capability to WASM guests.
type FetchHost struct {
	client *http.Client
	ns     string
}

// Option configures a FetchHost.
type Option func(*FetchHost)

// WithClient overrides the net/http client used for outgoing calls.
func WithClient(c *http.Client) Option {
	return func(h *FetchHost) { h.client = c }
}

// WithNamespace overrides the host module namespace.
func WithNamespace(ns string) Option {
	return func(h *FetchHost) { h.ns = ns }
}

// NewFetchHost creates a fetch host with a default 30 second client
// timeout.
func NewFetchHost(opts ...Option) *FetchHost {
	h := &FetchHost{
		client: &http.Client{Timeout: 30 * time.Second},
		ns:     Namespace,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Namespace returns the WIT interface name.
func (h *FetchHost) Namespace() string {
	return h.ns
}

// Register instantiates the host module on the given wazero runtime.
func (h *FetchHost) Register(ctx context.Context, r wazero.Runtime) error {
	_, err := r.NewHostModuleBuilder(h.ns).
		NewFunctionBuilder().
		WithFunc(h.fetch).
		Export("fetch").
		Instantiate(ctx)
	if err != nil {
		return errors.Registration(errors.PhaseHost, h.ns, "fetch", err)
	}
	return nil
}

// fetch is the host function: fetch(req-ptr, ret-ptr) -> errno.
func (h *FetchHost) fetch(ctx context.Context, mod api.Module, reqPtr, retPtr uint32) uint32 {
	mem := WrapMemory(mod.Memory())
	if mem == nil {
		Logger().Error("fetch: guest module exports no memory")
		return ErrnoInvalidRequest
	}
	allocFn := mod.ExportedFunction(CabiRealloc)
	if allocFn == nil {
		Logger().Error("fetch: guest module exports no allocator", zap.String("export", CabiRealloc))
		return ErrnoNoAllocator
	}
	return h.serve(ctx, mem, WrapAllocator(ctx, allocFn), reqPtr, retPtr)
}

// serve runs the capability against abstract memory so it can be driven
// without a live guest instance.
func (h *FetchHost) serve(ctx context.Context, mem httpboundary.Memory, alloc httpboundary.Allocator, reqPtr, retPtr uint32) uint32 {
	req, errno := decodeRequest(mem, reqPtr)
	if errno != ErrnoOK {
		return errno
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method.ToNative(), req.url, bytes.NewReader(req.body))
	if err != nil {
		Logger().Warn("fetch: bad request", zap.String("url", req.url), zap.Error(err))
		return ErrnoBadRequest
	}
	for _, hd := range req.headers {
		httpReq.Header.Add(hd.Name, string(hd.Value))
	}

	nativeResp, err := h.client.Do(httpReq)
	if err != nil {
		Logger().Warn("fetch: transport failure", zap.String("url", req.url), zap.Error(err))
		return ErrnoTransport
	}

	resp, err := httpvalue.ResponseFromNative(nativeResp)
	if err != nil {
		Logger().Warn("fetch: body drain failed", zap.String("url", req.url), zap.Error(err))
		return ErrnoTransport
	}

	addr, err := httpvalue.EncodeResponseInto(resp, mem, alloc)
	if err != nil {
		Logger().Error("fetch: response encode failed", zap.Error(err))
		return ErrnoEncode
	}
	if err := mem.WriteU32(retPtr, addr); err != nil {
		Logger().Error("fetch: ret pointer write failed", zap.Error(err))
		return ErrnoEncode
	}

	Logger().Debug("fetch: completed",
		zap.String("method", req.method.String()),
		zap.String("url", req.url),
		zap.Uint16("status", resp.Status),
		zap.Int("body_bytes", len(resp.Body)))
	return ErrnoOK
}

func decodeRequest(mem httpboundary.Memory, reqPtr uint32) (fetchRequest, uint32) {
	compiler, compiled, err := requestSchema()
	if err != nil {
		Logger().Error("fetch: request schema compile failed", zap.Error(err))
		return fetchRequest{}, ErrnoInvalidRequest
	}

	dec := abi.NewDecoderWithCompiler(compiler)
	v, err := dec.Decode(compiled, reqPtr, mem)
	if err != nil {
		Logger().Warn("fetch: request decode failed", zap.Error(err))
		return fetchRequest{}, ErrnoInvalidRequest
	}

	fields, ok := v.([]any)
	if !ok || len(fields) != 4 {
		return fetchRequest{}, ErrnoInvalidRequest
	}
	disc, ok := fields[0].(uint32)
	if !ok {
		return fetchRequest{}, ErrnoInvalidRequest
	}
	method, err := httpvalue.MethodFromDiscriminant(disc)
	if err != nil {
		return fetchRequest{}, ErrnoBadMethod
	}
	url, ok := fields[1].(string)
	if !ok {
		return fetchRequest{}, ErrnoInvalidRequest
	}
	rawHeaders, ok := fields[2].([]any)
	if !ok {
		return fetchRequest{}, ErrnoInvalidRequest
	}
	body, ok := fields[3].([]byte)
	if !ok {
		return fetchRequest{}, ErrnoInvalidRequest
	}

	headers := make([]httpvalue.Header, 0, len(rawHeaders))
	for _, rh := range rawHeaders {
		pair, ok := rh.([]any)
		if !ok || len(pair) != 2 {
			return fetchRequest{}, ErrnoInvalidRequest
		}
		name, ok1 := pair[0].(string)
		value, ok2 := pair[1].([]byte)
		if !ok1 || !ok2 {
			return fetchRequest{}, ErrnoInvalidRequest
		}
		headers = append(headers, httpvalue.NewHeader(name, value))
	}

	return fetchRequest{method: method, url: url, headers: headers, body: body}, ErrnoOK
}

// EncodeFetchRequest encodes a guest request record into mem for tests
// and in-process guests, returning the record address.
func EncodeFetchRequest(method httpvalue.Method, url string, headers []httpvalue.Header, body []byte, mem abi.Memory, alloc abi.Allocator) (uint32, error) {
	compiler, compiled, err := requestSchema()
	if err != nil {
		return 0, err
	}
	hs := make([]any, len(headers))
	for i, hd := range headers {
		value := hd.Value
		if value == nil {
			value = []byte{}
		}
		hs[i] = []any{hd.Name, value}
	}
	if body == nil {
		body = []byte{}
	}
	enc := abi.NewEncoderWithCompiler(compiler)
	return enc.Encode(compiled, []any{method.Discriminant(), url, hs, body}, mem, alloc)
}
