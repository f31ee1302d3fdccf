package cli

import "errors"

// User-facing messages. They are printed as-is; the underlying cause only
// goes to the debug log.
const (
	msgLoadProvinces = "Gagal memuat data provinsi"
	msgLoadCities    = "Gagal memuat data kota"
	msgLoadSchedule  = "Gagal memuat jadwal"

	msgGeoUnsupported       = "Geolocation tidak didukung"
	msgGeoDenied            = "Pengguna menolak untuk memberikan izin lokasi"
	msgPositionUnavailable  = "Posisi tidak dapat ditemukan"
	msgGeoTimeout           = "Waktu permintaan lokasi habis"
	msgGeoFailed            = "Gagal mendapatkan lokasi"
	msgProvinceNotFound     = "Provinsi tidak ditemukan"
	msgCityNotFound         = "Kota tidak ditemukan"
	msgCityNotInProvince    = "Kota tidak ditemukan di provinsi yang dipilih"
	msgSelectFirst          = "Pilih provinsi dan kota terlebih dahulu"
	msgNoUpcoming           = "Tidak ada waktu sholat berikutnya pada jadwal ini"
	msgEnableNotifications  = "Silakan aktifkan notifikasi untuk menerima pengingat waktu sholat."
	msgResetConfirm         = "Apakah Anda yakin ingin mereset semua data dan izin?"
	msgResetDone            = "Data telah direset dan izin notifikasi telah dihapus."
	msgResetCanceled        = "Reset dibatalkan."
	msgLocationConsent      = "Izinkan imsakiyah menggunakan lokasi Anda?"
	msgNotificationConsent  = "Izinkan imsakiyah menampilkan notifikasi waktu sholat?"
	msgNoRemindersRemaining = "Tidak ada waktu sholat tersisa untuk diingatkan pada jadwal ini."
)

// alertError is a failure shown to the user as a single message. The cause
// is kept for errors.Is and the debug log.
type alertError struct {
	msg string
	err error
}

func (e *alertError) Error() string { return e.msg }

func (e *alertError) Unwrap() error { return e.err }

// alert logs cause at debug level and returns an error carrying msg.
func alert(msg string, cause error) error {
	if cause != nil {
		logger.Debug().Err(cause).Str("message", msg).Msg("request failed")
	}
	return &alertError{msg: msg, err: cause}
}

// isAlert reports whether err already carries a user-facing message.
func isAlert(err error) bool {
	var a *alertError
	return errors.As(err, &a)
}
