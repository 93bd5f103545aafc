package services

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukikurage/e-signature-api/internal/models"
)

func (e *testEnv) uploadDocument(t *testing.T, userID uint64, name string, data []byte) *models.Document {
	t.Helper()
	doc, err := e.docs.Upload(UploadInput{
		UserID:           userID,
		OriginalFilename: name,
		Data:             data,
	})
	require.NoError(t, err)
	return doc
}

func (e *testEnv) createSignature(t *testing.T, userID uint64) *models.Signature {
	t.Helper()
	sig, err := e.sigs.Create(CreateSignatureInput{
		UserID:        userID,
		Data:          testSignatureData(t),
		SignatureType: "drawn",
	})
	require.NoError(t, err)
	return sig
}

func TestSigningService_ApplyToImageDocument(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")

	doc := env.uploadDocument(t, alice.ID, "photo.png", testPNG(t, 300, 300, testWhite))
	sig := env.createSignature(t, alice.ID)

	signed, err := env.signing.Apply(ApplyInput{
		UserID:      alice.ID,
		DocumentID:  doc.ID,
		SignatureID: sig.ID,
		PositionX:   150,
		PositionY:   250,
	})
	require.NoError(t, err)
	require.NotZero(t, signed.ID)
	require.Equal(t, doc.ID, signed.DocumentID)
	require.Equal(t, sig.ID, signed.SignatureID)
	require.Equal(t, 150, signed.SignaturePositionX)
	require.Equal(t, 250, signed.SignaturePositionY)
	require.True(t, env.store.Exists(signed.SignedFilePath))

	// The source document is flagged signed.
	updated, err := env.docs.Get(doc.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, updated.IsSigned)

	// The output carries the red signature pixels at the requested offset
	// and untouched base pixels elsewhere.
	data, err := env.store.Read(signed.SignedFilePath)
	require.NoError(t, err)
	out, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 300, out.Bounds().Dx())

	red := color.NRGBAModel.Convert(out.At(155, 255)).(color.NRGBA)
	require.Equal(t, uint8(255), red.R)
	require.Equal(t, uint8(0), red.G)

	corner := color.NRGBAModel.Convert(out.At(0, 0)).(color.NRGBA)
	require.Equal(t, testWhite, corner)
}

func TestSigningService_RepeatSigningCreatesNewVersions(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")

	doc := env.uploadDocument(t, alice.ID, "photo.png", testPNG(t, 100, 100, testWhite))
	sig := env.createSignature(t, alice.ID)

	first, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: sig.ID})
	require.NoError(t, err)
	second, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: sig.ID, PositionX: 30, PositionY: 40})
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.SignedFilePath, second.SignedFilePath)

	versions, err := env.signing.ListVersions(doc.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	updated, err := env.docs.Get(doc.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, updated.IsSigned)
}

func TestSigningService_OwnershipIsolation(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")
	mallory := env.createUser(t, "mallory")

	doc := env.uploadDocument(t, alice.ID, "photo.png", testPNG(t, 50, 50, testWhite))
	aliceSig := env.createSignature(t, alice.ID)
	mallorySig := env.createSignature(t, mallory.ID)

	// Someone else's document reads as absent, not forbidden.
	_, err := env.signing.Apply(ApplyInput{UserID: mallory.ID, DocumentID: doc.ID, SignatureID: mallorySig.ID})
	require.ErrorIs(t, err, ErrDocumentNotFound)

	malloryDoc := env.uploadDocument(t, mallory.ID, "own.png", testPNG(t, 50, 50, testWhite))
	_, err = env.signing.Apply(ApplyInput{UserID: mallory.ID, DocumentID: malloryDoc.ID, SignatureID: aliceSig.ID})
	require.ErrorIs(t, err, ErrSignatureNotFound)

	signed, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: aliceSig.ID})
	require.NoError(t, err)

	_, err = env.signing.Get(signed.ID, mallory.ID)
	require.ErrorIs(t, err, ErrSignedDocumentNotFound)
	_, err = env.signing.ListVersions(doc.ID, mallory.ID)
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestSigningService_SignatureAssetMissing(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")

	doc := env.uploadDocument(t, alice.ID, "photo.png", testPNG(t, 50, 50, testWhite))
	sig := env.createSignature(t, alice.ID)
	require.NoError(t, os.Remove(sig.FilePath))

	_, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: sig.ID})
	require.ErrorIs(t, err, ErrSignatureAssetMissing)

	// Nothing was persisted for the failed attempt.
	versions, err := env.signing.ListVersions(doc.ID, alice.ID)
	require.NoError(t, err)
	require.Empty(t, versions)
}

func TestSigningService_UnrenderablePDFFallsBackToCopy(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")

	original := []byte("%PDF-1.4 not really")
	doc := env.uploadDocument(t, alice.ID, "contract.pdf", original)
	sig := env.createSignature(t, alice.ID)

	signed, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: sig.ID, PositionX: 5, PositionY: 5})
	require.NoError(t, err)

	// Degraded path: the signed artifact is a byte-for-byte copy of the
	// original, still recorded as a version with the flag flipped.
	data, err := env.store.Read(signed.SignedFilePath)
	require.NoError(t, err)
	require.Equal(t, original, data)

	updated, err := env.docs.Get(doc.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, updated.IsSigned)
}

func TestSigningService_DocumentDeleteCascadesToVersions(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")

	doc := env.uploadDocument(t, alice.ID, "photo.png", testPNG(t, 50, 50, testWhite))
	sig := env.createSignature(t, alice.ID)

	signed, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: sig.ID})
	require.NoError(t, err)

	require.NoError(t, env.docs.Delete(doc.ID, alice.ID))

	_, err = env.signing.Get(signed.ID, alice.ID)
	require.ErrorIs(t, err, ErrSignedDocumentNotFound)
	require.False(t, env.store.Exists(signed.SignedFilePath))

	// The signature asset itself survives a document delete.
	_, err = env.sigs.Get(sig.ID, alice.ID)
	require.NoError(t, err)
}

func TestSigningService_SignatureDeleteCascadesToVersions(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")

	doc := env.uploadDocument(t, alice.ID, "photo.png", testPNG(t, 50, 50, testWhite))
	sig := env.createSignature(t, alice.ID)

	signed, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: sig.ID})
	require.NoError(t, err)

	require.NoError(t, env.sigs.Delete(sig.ID, alice.ID))

	_, err = env.signing.Get(signed.ID, alice.ID)
	require.ErrorIs(t, err, ErrSignedDocumentNotFound)

	// The document remains, and its signed flag does not revert.
	updated, err := env.docs.Get(doc.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, updated.IsSigned)
}

func TestSigningService_ReadFileUsesOriginalName(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice")

	doc := env.uploadDocument(t, alice.ID, "photo.png", testPNG(t, 50, 50, testWhite))
	sig := env.createSignature(t, alice.ID)

	signed, err := env.signing.Apply(ApplyInput{UserID: alice.ID, DocumentID: doc.ID, SignatureID: sig.ID})
	require.NoError(t, err)

	data, name, err := env.signing.ReadFile(signed.ID, alice.ID)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, "signed_photo.png", name)
}
