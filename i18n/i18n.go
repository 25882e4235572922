// Package i18n provides the static label tables used on rendered invoices
// and API messages, plus language detection and long date formatting.
package i18n

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Key identifies a translatable label.
type Key string

const (
	Invoice         Key = "invoice"
	BillTo          Key = "billTo"
	From            Key = "from"
	To              Key = "to"
	InvoiceNumber   Key = "invoiceNumber"
	InvoiceDate     Key = "invoiceDate"
	DueDate         Key = "dueDate"
	Description     Key = "description"
	Quantity        Key = "quantity"
	Price           Key = "price"
	Amount          Key = "amount"
	Subtotal        Key = "subtotal"
	Discount        Key = "discount"
	Tax             Key = "tax"
	Total           Key = "total"
	TotalDue        Key = "totalDue"
	Notes           Key = "notes"
	Terms           Key = "terms"
	PaymentInfo     Key = "paymentInfo"
	ThankYou        Key = "thankYou"
	Details         Key = "details"
	Date            Key = "date"
	Due             Key = "due"
	UnitPrice       Key = "unitPrice"
	ItemDescription Key = "itemDescription"

	PONumber            Key = "poNumber"
	ShipTo              Key = "shipTo"
	AuthorizedSignature Key = "authorizedSignature"
	PlaceholderBusiness Key = "placeholderBusiness"
	PlaceholderClient   Key = "placeholderClient"
	PlaceholderItem     Key = "placeholderItem"

	// validation messages
	Required           Key = "required"
	MustBePositive     Key = "must_be_positive"
	MustBeNonNegative  Key = "must_be_non_negative"
	OutOfRange         Key = "out_of_range"
	InvalidValue       Key = "invalid_value"
	NoticeLoadNotFound Key = "notice_load_not_found"
	NoticeClientGone   Key = "notice_client_not_found"
)

// DefaultLang is the final language in the lookup chain.
const DefaultLang = "en"

var translations = map[string]map[Key]string{
	"en": {
		Invoice: "INVOICE", BillTo: "Bill To", From: "From", To: "To",
		InvoiceNumber: "Invoice Number", InvoiceDate: "Invoice Date", DueDate: "Due Date",
		Description: "Description", Quantity: "Qty", Price: "Price", Amount: "Amount",
		Subtotal: "Subtotal", Discount: "Discount", Tax: "Tax", Total: "Total", TotalDue: "Total Due",
		Notes: "Notes", Terms: "Terms & Notes", PaymentInfo: "Payment Information",
		ThankYou: "Thank you for your business!", Details: "Details", Date: "Date", Due: "Due",
		UnitPrice: "Unit Price", ItemDescription: "Item Description",
		PONumber: "PO Number", ShipTo: "Ship To", AuthorizedSignature: "Authorized Signature",
		PlaceholderBusiness: "Your Company", PlaceholderClient: "Client Name", PlaceholderItem: "Item description",
		Required: "Required", MustBePositive: "Must be positive", MustBeNonNegative: "Must not be negative",
		OutOfRange: "Out of range", InvalidValue: "Invalid value",
		NoticeLoadNotFound: "Invoice not found, starting a new one", NoticeClientGone: "Client not found",
	},
	"es": {
		Invoice: "FACTURA", BillTo: "Facturar A", From: "De", To: "Para",
		InvoiceNumber: "Número de Factura", InvoiceDate: "Fecha de Factura", DueDate: "Fecha de Vencimiento",
		Description: "Descripción", Quantity: "Cant.", Price: "Precio", Amount: "Importe",
		Subtotal: "Subtotal", Discount: "Descuento", Tax: "Impuesto", Total: "Total", TotalDue: "Total a Pagar",
		Notes: "Notas", Terms: "Términos y Notas", PaymentInfo: "Información de Pago",
		ThankYou: "¡Gracias por su preferencia!", Details: "Detalles", Date: "Fecha", Due: "Vence",
		UnitPrice: "Precio Unit.", ItemDescription: "Descripción del Artículo",
	},
	"fr": {
		Invoice: "FACTURE", BillTo: "Facturer À", From: "De", To: "À",
		InvoiceNumber: "Numéro de Facture", InvoiceDate: "Date de Facture", DueDate: "Date d'Échéance",
		Description: "Description", Quantity: "Qté", Price: "Prix", Amount: "Montant",
		Subtotal: "Sous-total", Discount: "Remise", Tax: "Taxe", Total: "Total", TotalDue: "Total à Payer",
		Notes: "Notes", Terms: "Conditions et Notes", PaymentInfo: "Informations de Paiement",
		ThankYou: "Merci pour votre confiance!", Details: "Détails", Date: "Date", Due: "Échéance",
		UnitPrice: "Prix Unitaire", ItemDescription: "Description de l'Article",
		Required: "Requis", MustBePositive: "Doit être positif", MustBeNonNegative: "Ne doit pas être négatif",
		OutOfRange: "Hors limites", InvalidValue: "Valeur invalide",
	},
	"de": {
		Invoice: "RECHNUNG", BillTo: "Rechnung An", From: "Von", To: "An",
		InvoiceNumber: "Rechnungsnummer", InvoiceDate: "Rechnungsdatum", DueDate: "Fälligkeitsdatum",
		Description: "Beschreibung", Quantity: "Menge", Price: "Preis", Amount: "Betrag",
		Subtotal: "Zwischensumme", Discount: "Rabatt", Tax: "Steuer", Total: "Gesamt", TotalDue: "Gesamtbetrag",
		Notes: "Anmerkungen", Terms: "Bedingungen", PaymentInfo: "Zahlungsinformationen",
		ThankYou: "Vielen Dank für Ihren Auftrag!", Details: "Details", Date: "Datum", Due: "Fällig",
		UnitPrice: "Einzelpreis", ItemDescription: "Artikelbeschreibung",
	},
	"pt": {
		Invoice: "FATURA", BillTo: "Cobrar De", From: "De", To: "Para",
		InvoiceNumber: "Número da Fatura", InvoiceDate: "Data da Fatura", DueDate: "Data de Vencimento",
		Description: "Descrição", Quantity: "Qtd.", Price: "Preço", Amount: "Valor",
		Subtotal: "Subtotal", Discount: "Desconto", Tax: "Imposto", Total: "Total", TotalDue: "Total a Pagar",
		Notes: "Notas", Terms: "Termos e Notas", PaymentInfo: "Informações de Pagamento",
		ThankYou: "Obrigado pela preferência!", Details: "Detalhes", Date: "Data", Due: "Vencimento",
		UnitPrice: "Preço Unit.", ItemDescription: "Descrição do Item",
	},
	"it": {
		Invoice: "FATTURA", BillTo: "Fatturare A", From: "Da", To: "A",
		InvoiceNumber: "Numero Fattura", InvoiceDate: "Data Fattura", DueDate: "Data Scadenza",
		Description: "Descrizione", Quantity: "Qtà", Price: "Prezzo", Amount: "Importo",
		Subtotal: "Subtotale", Discount: "Sconto", Tax: "IVA", Total: "Totale", TotalDue: "Totale Dovuto",
		Notes: "Note", Terms: "Termini e Note", PaymentInfo: "Informazioni di Pagamento",
		ThankYou: "Grazie per la vostra fiducia!", Details: "Dettagli", Date: "Data", Due: "Scadenza",
		UnitPrice: "Prezzo Unit.", ItemDescription: "Descrizione Articolo",
	},
	"nl": {
		Invoice: "FACTUUR", BillTo: "Factureren Aan", From: "Van", To: "Aan",
		InvoiceNumber: "Factuurnummer", InvoiceDate: "Factuurdatum", DueDate: "Vervaldatum",
		Description: "Omschrijving", Quantity: "Aantal", Price: "Prijs", Amount: "Bedrag",
		Subtotal: "Subtotaal", Discount: "Korting", Tax: "BTW", Total: "Totaal", TotalDue: "Te Betalen",
		Notes: "Opmerkingen", Terms: "Voorwaarden", PaymentInfo: "Betalingsinformatie",
		ThankYou: "Bedankt voor uw vertrouwen!", Details: "Details", Date: "Datum", Due: "Vervalt",
		UnitPrice: "Eenheidsprijs", ItemDescription: "Artikelomschrijving",
	},
	"ja": {
		Invoice: "請求書", BillTo: "請求先", From: "送付元", To: "宛先",
		InvoiceNumber: "請求書番号", InvoiceDate: "請求日", DueDate: "支払期限",
		Description: "品目", Quantity: "数量", Price: "単価", Amount: "金額",
		Subtotal: "小計", Discount: "割引", Tax: "消費税", Total: "合計", TotalDue: "お支払い金額",
		Notes: "備考", Terms: "備考・条件", PaymentInfo: "お支払い情報",
		ThankYou: "ありがとうございました", Details: "詳細", Date: "日付", Due: "期限",
		UnitPrice: "単価", ItemDescription: "品目説明",
	},
	"zh": {
		Invoice: "发票", BillTo: "收票人", From: "发票方", To: "收票方",
		InvoiceNumber: "发票编号", InvoiceDate: "开票日期", DueDate: "到期日期",
		Description: "描述", Quantity: "数量", Price: "单价", Amount: "金额",
		Subtotal: "小计", Discount: "折扣", Tax: "税费", Total: "总计", TotalDue: "应付金额",
		Notes: "备注", Terms: "条款与备注", PaymentInfo: "付款信息",
		ThankYou: "感谢您的惠顾！", Details: "详情", Date: "日期", Due: "到期",
		UnitPrice: "单价", ItemDescription: "项目描述",
	},
	"ar": {
		Invoice: "فاتورة", BillTo: "فاتورة إلى", From: "من", To: "إلى",
		InvoiceNumber: "رقم الفاتورة", InvoiceDate: "تاريخ الفاتورة", DueDate: "تاريخ الاستحقاق",
		Description: "الوصف", Quantity: "الكمية", Price: "السعر", Amount: "المبلغ",
		Subtotal: "المجموع الفرعي", Discount: "الخصم", Tax: "الضريبة", Total: "المجموع", TotalDue: "المبلغ المستحق",
		Notes: "ملاحظات", Terms: "الشروط والملاحظات", PaymentInfo: "معلومات الدفع",
		ThankYou: "شكراً لتعاملكم معنا!", Details: "التفاصيل", Date: "التاريخ", Due: "الاستحقاق",
		UnitPrice: "سعر الوحدة", ItemDescription: "وصف العنصر",
	},
}

var locales = map[string]string{
	"en": "en-US", "es": "es-ES", "fr": "fr-FR", "de": "de-DE", "pt": "pt-BR",
	"it": "it-IT", "nl": "nl-NL", "ja": "ja-JP", "zh": "zh-CN", "ar": "ar-SA",
}

// T returns the label for key in lang, falling back to English and then to
// the key itself.
func T(lang string, key Key) string {
	if s, ok := translations[normalize(lang)][key]; ok {
		return s
	}
	if s, ok := translations[DefaultLang][key]; ok {
		return s
	}
	return string(key)
}

// Known reports whether key has an English label.
func Known(key Key) bool {
	_, ok := translations[DefaultLang][key]
	return ok
}

// Supported reports whether lang has its own label table.
func Supported(lang string) bool {
	_, ok := translations[normalize(lang)]
	return ok
}

// Languages returns the supported language codes, sorted.
func Languages() []string {
	out := make([]string, 0, len(translations))
	for l := range translations {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// IsRTL reports whether lang is written right to left.
func IsRTL(lang string) bool { return normalize(lang) == "ar" }

// Locale maps a language to the regional locale used for dates.
func Locale(lang string) string {
	if l, ok := locales[normalize(lang)]; ok {
		return l
	}
	return locales[DefaultLang]
}

// DetectLanguage picks the first supported language from an Accept-Language
// header, defaulting to English.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := normalize(tag)
		if _, ok := translations[base]; ok {
			return base
		}
	}
	return DefaultLang
}

func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}

var months = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	"de": {"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	"pt": {"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	"it": {"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
	"nl": {"januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"},
	"ar": {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
}

// EmptyDate is shown wherever a date or number is missing.
const EmptyDate = "---"

// FormatDate renders t in the long form of lang ("January 15, 2025",
// "15 janvier 2025", "2025年1月15日"). The zero time renders as EmptyDate.
func FormatDate(t time.Time, lang string) string {
	if t.IsZero() {
		return EmptyDate
	}
	l := normalize(lang)
	y, m, d := t.Date()
	switch l {
	case "ja", "zh":
		return fmt.Sprintf("%d年%d月%d日", y, int(m), d)
	case "de":
		return fmt.Sprintf("%d. %s %d", d, months[l][m-1], y)
	case "es", "pt":
		return fmt.Sprintf("%d de %s de %d", d, months[l][m-1], y)
	case "fr", "it", "nl", "ar":
		return fmt.Sprintf("%d %s %d", d, months[l][m-1], y)
	default:
		return fmt.Sprintf("%s %d, %d", months["en"][m-1], d, y)
	}
}
