package vcard

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for builder events.
var (
	SignalBuilderCreated   = capitan.NewSignal("vcard.builder.created", "Builder instantiated")
	SignalConfigurationSet = capitan.NewSignal("vcard.config.set", "Builder configuration changed")
	SignalFieldRejected    = capitan.NewSignal("vcard.field.rejected", "Field failed validation or formatting")
	SignalImageFetched     = capitan.NewSignal("vcard.image.fetched", "Image fetched through the configured Fetcher")
	SignalRenderStart      = capitan.NewSignal("vcard.render.start", "Render operation beginning")
	SignalRenderComplete   = capitan.NewSignal("vcard.render.complete", "Render operation finished")
)

// Keys for typed event data.
var (
	KeyCardID       = capitan.NewStringKey("card_id")
	KeyField        = capitan.NewStringKey("field")
	KeyOption       = capitan.NewStringKey("option")
	KeyLocation     = capitan.NewStringKey("location")
	KeySize         = capitan.NewIntKey("size")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
	KeyPhoneCount   = capitan.NewIntKey("phone_count")
	KeyAddressCount = capitan.NewIntKey("address_count")
	KeyEmailCount   = capitan.NewIntKey("email_count")
	KeyItemCount    = capitan.NewIntKey("item_count")
	KeyURLCount     = capitan.NewIntKey("url_count")
)

// emitBuilderCreated emits an event when a builder is created.
func emitBuilderCreated(ctx context.Context, cardID string) {
	capitan.Emit(ctx, SignalBuilderCreated,
		KeyCardID.Field(cardID),
	)
}

// emitConfigurationSet emits an event when configuration changes.
func emitConfigurationSet(ctx context.Context, cardID, option string) {
	capitan.Emit(ctx, SignalConfigurationSet,
		KeyCardID.Field(cardID),
		KeyOption.Field(option),
	)
}

// emitFieldRejected emits an error event when a mutator rejects a value.
func emitFieldRejected(ctx context.Context, cardID, field string, err error) {
	capitan.Error(ctx, SignalFieldRejected,
		KeyCardID.Field(cardID),
		KeyField.Field(field),
		KeyError.Field(err),
	)
}

// emitImageFetched emits an event when an image fetch finishes.
func emitImageFetched(ctx context.Context, cardID, location string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyCardID.Field(cardID),
		KeyLocation.Field(location),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalImageFetched, fields...)
	} else {
		capitan.Emit(ctx, SignalImageFetched, fields...)
	}
}

// emitRenderStart emits an event when render begins.
func emitRenderStart(ctx context.Context, cardID string) {
	capitan.Emit(ctx, SignalRenderStart,
		KeyCardID.Field(cardID),
	)
}

// renderCounts summarizes the accumulated groups of a render.
type renderCounts struct {
	phones, addresses, emails, items, urls int
}

// emitRenderComplete emits an event when render finishes.
func emitRenderComplete(ctx context.Context, cardID string, size int, duration time.Duration, counts renderCounts, err error) {
	fields := []capitan.Field{
		KeyCardID.Field(cardID),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyPhoneCount.Field(counts.phones),
		KeyAddressCount.Field(counts.addresses),
		KeyEmailCount.Field(counts.emails),
		KeyItemCount.Field(counts.items),
		KeyURLCount.Field(counts.urls),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalRenderComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalRenderComplete, fields...)
	}
}
