/*
Package forage is a client SDK for accepting EBT payments: it tokenizes
card numbers, checks SNAP and cash balances, and captures payments, routing
every PIN through a PCI-compliant vault proxy so the host application never
handles raw card secrets.

Configure once, then run operations against the shared instance:

	err := forage.Setup(forage.Config{
		MerchantID:   "mid/123",
		SessionToken: "sandbox_ey...",
	})
	if err != nil {
		return err
	}

	pan := card.NewPANField()
	pan.SetText("5076807890123456")
	pm, err := forage.Shared().TokenizeCard(ctx, forage.TokenizeRequest{PAN: pan})

Balance checks and captures take a PIN field; the PIN never leaves it except
through the vault collector at submit time:

	pin := card.NewPINField()
	pin.SetText("1234")
	balance, err := forage.Shared().CheckBalance(ctx, forage.BalanceRequest{
		PaymentMethodRef: pm.Ref,
		PIN:              pin,
	})

Every failure surfaces as a *model.ForageError with a stable machine
readable code; see the model package for the taxonomy.
*/
package forage
