package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04"

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func printProducts(out io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "no products")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tBULK\tSTOCK")
	for _, p := range products {
		bulk := "-"
		if p.HasBulkPrice() {
			bulk = fmt.Sprintf("%s from %d", money(p.BulkPrice.Decimal), p.BulkMinQuantity)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, money(p.SellingPrice), bulk, p.StockQuantity)
	}
	tw.Flush()
}

func printProduct(out io.Writer, p domain.Product) {
	tw := newTable(out)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(tw, "Description\t%s\n", p.Description)
	}
	if p.Category != nil {
		fmt.Fprintf(tw, "Category\t%s\n", p.Category.Name)
	}
	fmt.Fprintf(tw, "MRP\t%s\n", money(p.MRP))
	fmt.Fprintf(tw, "Price\t%s\n", money(p.SellingPrice))
	if p.HasBulkPrice() {
		fmt.Fprintf(tw, "Bulk price\t%s (%d or more)\n", money(p.BulkPrice.Decimal), p.BulkMinQuantity)
	}
	fmt.Fprintf(tw, "Stock\t%d\n", p.StockQuantity)
	if img, ok := p.PrimaryImage(); ok {
		fmt.Fprintf(tw, "Image\t%s\n", img.URL)
	}
	tw.Flush()
}

func printCategories(out io.Writer, categories []domain.Category) {
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	tw.Flush()
}

func printCart(out io.Writer, cart domain.CartState) {
	if len(cart.Items) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tUNIT\tSUBTOTAL")
	for _, item := range cart.Items {
		unit := item.Product.EffectivePrice(item.Quantity)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			item.Product.ID, item.Product.Name, item.Quantity,
			money(unit), money(unit.Mul(decimal.NewFromInt(int64(item.Quantity)))))
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%s\n", cart.ItemCount(), money(cart.Total()))
	tw.Flush()
}

func printWishlist(out io.Writer, wishlist domain.WishlistState) {
	if len(wishlist.Items) == 0 {
		fmt.Fprintln(out, "wishlist is empty")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tPRICE")
	for _, p := range wishlist.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, money(p.SellingPrice))
	}
	tw.Flush()
}

func printCustomOrders(out io.Writer, orders []domain.CustomOrder) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "no custom orders")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tITEM\tQTY\tBUDGET\tAGREED\tSTATUS\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			o.ID, o.ItemName, o.Quantity, money(o.Budget), agreed(o),
			o.Status, o.CreatedAt.Format(timeLayout))
	}
	tw.Flush()
}

func printCustomOrder(out io.Writer, o domain.CustomOrder, actor domain.Actor) {
	tw := newTable(out)
	fmt.Fprintf(tw, "ID\t%s\n", o.ID)
	fmt.Fprintf(tw, "Item\t%s\n", o.ItemName)
	fmt.Fprintf(tw, "Description\t%s\n", o.Description)
	fmt.Fprintf(tw, "Quantity\t%d\n", o.Quantity)
	fmt.Fprintf(tw, "Budget\t%s\n", money(o.Budget))
	if o.ReferenceProduct != nil {
		fmt.Fprintf(tw, "Reference\t%s (%s)\n", o.ReferenceProduct.Name, o.ReferenceProduct.ID)
	} else if o.ReferenceProductID != nil {
		fmt.Fprintf(tw, "Reference\t%s\n", *o.ReferenceProductID)
	}
	fmt.Fprintf(tw, "Status\t%s\n", o.Status)
	fmt.Fprintf(tw, "Agreed price\t%s\n", agreed(o))
	if o.AdminNote != nil {
		fmt.Fprintf(tw, "Note\t%s\n", *o.AdminNote)
	}
	if o.OrderID != nil {
		fmt.Fprintf(tw, "Order\t%s\n", *o.OrderID)
	}

	actions := o.ActionsFor(actor)
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	if len(names) == 0 {
		names = []string{"none"}
	}
	fmt.Fprintf(tw, "Actions\t%s\n", strings.Join(names, ", "))
	tw.Flush()
}

func agreed(o domain.CustomOrder) string {
	if !o.AgreedPrice.Valid {
		return "-"
	}
	return money(o.AgreedPrice.Decimal)
}

func printOrders(out io.Writer, orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "no orders")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tITEMS\tTOTAL\tSTATUS\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", o.ID, len(o.Items), money(o.Total), o.Status, o.CreatedAt.Format(timeLayout))
	}
	tw.Flush()
}

func printOrder(out io.Writer, o domain.Order) {
	fmt.Fprintf(out, "Order %s (%s)\n", o.ID, o.Status)
	tw := newTable(out)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tUNIT\tSUBTOTAL")
	for _, item := range o.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", item.ProductID, item.Name, item.Quantity, money(item.UnitPrice), money(item.Subtotal))
	}
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\n", money(o.Total))
	tw.Flush()
	if o.CustomOrderID != nil {
		fmt.Fprintf(out, "Custom order %s\n", *o.CustomOrderID)
	}
}
