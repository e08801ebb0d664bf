// Package report genera los reportes PDF de pedidos, inventario, clientes y productos.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
)

// Kind tipo de reporte.
type Kind string

const (
	KindPedidos    Kind = "pedidos"
	KindInventario Kind = "inventario"
	KindClientes   Kind = "clientes"
	KindProductos  Kind = "productos"
)

// ParseKind reconoce el parámetro tipo.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPedidos, KindInventario, KindClientes, KindProductos:
		return k, nil
	}
	return "", domain.NewValidationError("tipo", "debe ser pedidos, inventario, clientes o productos")
}

// Request parámetros de GET /api/reporte-pdf.
type Request struct {
	Kind string
	From string // AAAA-MM-DD, inclusive
	To   string // AAAA-MM-DD, inclusive
}

// UseCase arma el contenido de cada reporte y delega la maquetación en PDFGenerator.
type UseCase struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	clientRepo    repository.ClientRepository
	productRepo   repository.ProductRepository
	generator     PDFGenerator
	now           func() time.Time
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	generator PDFGenerator,
) *UseCase {
	return &UseCase{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		clientRepo:    clientRepo,
		productRepo:   productRepo,
		generator:     generator,
		now:           time.Now,
	}
}

// Generate valida los parámetros, arma el reporte y devuelve (pdfBytes, filename).
//
// Retorna domain.ErrInvalidInput si el tipo o las fechas no son válidos.
func (uc *UseCase) Generate(ctx context.Context, in Request) (pdfBytes []byte, filename string, err error) {
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return nil, "", err
	}
	rng, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, "", err
	}

	var doc Document
	switch kind {
	case KindPedidos:
		doc, err = uc.ordersDocument(ctx, rng)
	case KindInventario:
		doc, err = uc.inventoryDocument(ctx, rng)
	case KindClientes:
		doc, err = uc.clientsDocument(ctx, rng)
	case KindProductos:
		doc, err = uc.productsDocument(ctx, rng)
	}
	if err != nil {
		return nil, "", fmt.Errorf("reporte %s: %w", kind, err)
	}
	doc.Subtitle = rng.label()

	pdfBytes, err = uc.generator.GenerateReport(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("reporte %s: generación fallida: %w", kind, err)
	}
	filename = fmt.Sprintf("reporte_%s_%s.pdf", kind, uc.now().Format(dto.DateLayout))
	return pdfBytes, filename, nil
}

func (uc *UseCase) ordersDocument(ctx context.Context, rng dateRange) (Document, error) {
	list, err := uc.orderRepo.List(ctx)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		Title: "Reporte de pedidos",
		Columns: []Column{
			{Label: "Fecha", Width: 1, Align: AlignLeft},
			{Label: "Cliente", Width: 2, Align: AlignLeft},
			{Label: "Producto", Width: 2, Align: AlignLeft},
			{Label: "Cant.", Width: 1, Align: AlignCenter},
			{Label: "Total", Width: 2, Align: AlignRight},
			{Label: "Pago", Width: 1, Align: AlignRight},
			{Label: "Saldo", Width: 1, Align: AlignRight},
			{Label: "Estado", Width: 2, Align: AlignCenter},
		},
	}
	var total, paid, balance decimal.Decimal
	for _, o := range list {
		if !rng.contains(o.CreatedAt) {
			continue
		}
		doc.Rows = append(doc.Rows, []string{
			o.CreatedAt.Format("02/01/2006"),
			o.ClientName,
			o.ProductName,
			strconv.Itoa(o.Quantity),
			FormatMoney(o.TotalPrice),
			FormatMoney(o.Payment),
			FormatMoney(o.Balance),
			string(o.Status),
		})
		total = total.Add(o.TotalPrice)
		paid = paid.Add(o.Payment)
		balance = balance.Add(o.Balance)
	}
	doc.Totals = []Total{
		{Label: "Pedidos:", Value: strconv.Itoa(len(doc.Rows))},
		{Label: "Total:", Value: FormatMoney(total)},
		{Label: "Pagado:", Value: FormatMoney(paid)},
		{Label: "Saldo:", Value: FormatMoney(balance)},
	}
	return doc, nil
}

func (uc *UseCase) inventoryDocument(ctx context.Context, rng dateRange) (Document, error) {
	list, err := uc.inventoryRepo.List(ctx)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		Title: "Reporte de inventario",
		Columns: []Column{
			{Label: "Ingreso", Width: 2, Align: AlignLeft},
			{Label: "Nombre", Width: 3, Align: AlignLeft},
			{Label: "Cantidad", Width: 2, Align: AlignCenter},
			{Label: "Docenas", Width: 1, Align: AlignCenter},
			{Label: "Descripción", Width: 4, Align: AlignLeft},
		},
	}
	units := 0
	for _, it := range list {
		if !rng.contains(it.EntryDate) {
			continue
		}
		dozens := "—"
		if it.SoldByDozen {
			dozens = strconv.Itoa(it.Dozens)
		}
		doc.Rows = append(doc.Rows, []string{
			it.EntryDate.Format("02/01/2006"),
			it.Name,
			strconv.Itoa(it.Quantity),
			dozens,
			it.Description,
		})
		units += it.Quantity
	}
	doc.Totals = []Total{
		{Label: "Ítems:", Value: strconv.Itoa(len(doc.Rows))},
		{Label: "Unidades:", Value: strconv.Itoa(units)},
	}
	return doc, nil
}

func (uc *UseCase) clientsDocument(ctx context.Context, rng dateRange) (Document, error) {
	list, err := uc.clientRepo.List(ctx)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		Title: "Reporte de clientes",
		Columns: []Column{
			{Label: "Registro", Width: 2, Align: AlignLeft},
			{Label: "Nombre", Width: 4, Align: AlignLeft},
			{Label: "Apellido", Width: 4, Align: AlignLeft},
			{Label: "Teléfono", Width: 2, Align: AlignRight},
		},
	}
	for _, c := range list {
		if !rng.contains(c.CreatedAt) {
			continue
		}
		doc.Rows = append(doc.Rows, []string{c.CreatedAt.Format("02/01/2006"), c.FirstName, c.LastName, c.Phone})
	}
	doc.Totals = []Total{{Label: "Clientes:", Value: strconv.Itoa(len(doc.Rows))}}
	return doc, nil
}

func (uc *UseCase) productsDocument(ctx context.Context, rng dateRange) (Document, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return Document{}, err
	}
	var ids []string
	for _, p := range list {
		ids = append(ids, p.Materials...)
	}
	names, err := uc.inventoryRepo.NamesByIDs(ctx, ids)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		Title: "Reporte de productos",
		Columns: []Column{
			{Label: "Nombre", Width: 3, Align: AlignLeft},
			{Label: "Categoría", Width: 2, Align: AlignLeft},
			{Label: "Precio", Width: 2, Align: AlignRight},
			{Label: "Materiales", Width: 5, Align: AlignLeft},
		},
	}
	for _, p := range list {
		if !rng.contains(p.CreatedAt) {
			continue
		}
		materials := make([]string, 0, len(p.Materials))
		for _, id := range p.Materials {
			materials = append(materials, names[id])
		}
		doc.Rows = append(doc.Rows, []string{p.Name, p.Category, FormatMoney(p.Price), strings.Join(materials, ", ")})
	}
	doc.Totals = []Total{{Label: "Productos:", Value: strconv.Itoa(len(doc.Rows))}}
	return doc, nil
}

// dateRange rango inclusivo por día; límites nil = abierto.
type dateRange struct {
	from *time.Time
	to   *time.Time // último instante del día "hasta"
}

func parseRange(from, to string) (dateRange, error) {
	var rng dateRange
	f, err := dto.ParseDate("desde", &from)
	if err != nil {
		return rng, err
	}
	t, err := dto.ParseDate("hasta", &to)
	if err != nil {
		return rng, err
	}
	if f != nil {
		start := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.Local)
		rng.from = &start
	}
	if t != nil {
		end := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local).Add(24*time.Hour - time.Nanosecond)
		rng.to = &end
	}
	if rng.from != nil && rng.to != nil && rng.from.After(*rng.to) {
		return rng, domain.NewValidationError("desde", "no puede ser posterior a hasta")
	}
	return rng, nil
}

func (r dateRange) contains(t time.Time) bool {
	if r.from != nil && t.Before(*r.from) {
		return false
	}
	if r.to != nil && t.After(*r.to) {
		return false
	}
	return true
}

func (r dateRange) label() string {
	switch {
	case r.from != nil && r.to != nil:
		return fmt.Sprintf("Del %s al %s", r.from.Format("02/01/2006"), r.to.Format("02/01/2006"))
	case r.from != nil:
		return "Desde el " + r.from.Format("02/01/2006")
	case r.to != nil:
		return "Hasta el " + r.to.Format("02/01/2006")
	}
	return "Todos los registros"
}

// FormatMoney formatea un monto en bolivianos con punto de miles y coma decimal.
// Ej: 1234567.5 → "Bs 1.234.567,50", -4.5 → "Bs -4,50"
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "Bs " + sign + string(buf) + "," + frac
}
