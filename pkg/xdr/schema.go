package xdr

// SchemaFile identifies one .x source file the schema types were generated
// from, by path and SHA-256 of its content.
type SchemaFile struct {
	Path   string `json:"path" yaml:"path"`
	SHA256 string `json:"sha256" yaml:"sha256"`
}

// XDRFilesSHA256 lists the schema sources of the generated types.
var XDRFilesSHA256 = []SchemaFile{
	{"xdr/next/Stellar-SCP.x", "8f32b04d008f8bc33b8843d075e69837231a673691ee41d8b821ca229a6e802a"},
	{"xdr/next/Stellar-contract-config-setting.x", "5d1d926e4288b0f2d1ce9f891ca2cab97de9246381d57fca22e25a0d276c6682"},
	{"xdr/next/Stellar-contract-env-meta.x", "75a271414d852096fea3283c63b7f2a702f2905f78fc28eb60ec7d7bd366a780"},
	{"xdr/next/Stellar-contract-meta.x", "f01532c11ca044e19d9f9f16fe373e9af64835da473be556b9a807ee3319ae0d"},
	{"xdr/next/Stellar-contract-spec.x", "7bd048e1b008c274f667a4f9b8fcf5ae848e301aca0073cdc8b266ecd2c5f2f9"},
	{"xdr/next/Stellar-contract.x", "dce61df115c93fef5bb352beac1b504a518cb11dcb8ee029b1bb1b5f8fe52982"},
	{"xdr/next/Stellar-exporter.x", "a00c83d02e8c8382e06f79a191f1fb5abd097a4bbcab8481c67467e3270e0529"},
	{"xdr/next/Stellar-internal.x", "227835866c1b2122d1eaf28839ba85ea7289d1cb681dda4ca619c2da3d71fe00"},
	{"xdr/next/Stellar-ledger-entries.x", "5157cad76b008b3606fe5bc2cfe87596827d8e02d16cbec3cedc297bb571aa54"},
	{"xdr/next/Stellar-ledger.x", "cf936606885dd265082e553aa433c2cf47b720b6d58839b154cf71096b885d1e"},
	{"xdr/next/Stellar-overlay.x", "8c9b9c13c86fa4672f03d741705b41e7221be0fc48e1ea6eeb1ba07d31ec0723"},
	{"xdr/next/Stellar-transaction.x", "7c4c951f233ad7cdabedd740abd9697626ec5bc03ce97bf60cbaeee1481a48d1"},
	{"xdr/next/Stellar-types.x", "d37a4b8683d2ddb9f13f6d8a4e5111dfe7de4176516db52bc0517ec46a82c3d4"},
}
